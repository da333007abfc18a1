package kmcluster

import (
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/kmcluster/distance"
)

// Point is an ordered sequence of coordinates with an optional label.
type Point struct {
	Label  string    `json:"label,omitempty"`
	Coords []float64 `json:"coords"`
}

// NewPoint creates an unlabeled point from the given coordinates.
func NewPoint(coords ...float64) Point {
	return Point{Coords: slices.Clone(coords)}
}

// NewLabeledPoint creates a labeled point. The coordinates are copied.
func NewLabeledPoint(label string, coords []float64) Point {
	return Point{Label: label, Coords: slices.Clone(coords)}
}

// Dim returns the number of coordinates.
func (p Point) Dim() int {
	return len(p.Coords)
}

// Distance returns the Euclidean distance to other.
// Points of unequal dimensionality yield *ErrDimensionMismatch.
func (p Point) Distance(other Point) (float64, error) {
	d, err := distance.Euclidean(p.Coords, other.Coords)
	if err != nil {
		return 0, translateError(err)
	}
	return d, nil
}

// Accumulate adds other component-wise. A point without coordinates first
// adopts the shape of other, filled with zero.
func (p *Point) Accumulate(other Point) error {
	if len(p.Coords) == 0 {
		if n := len(other.Coords); cap(p.Coords) >= n {
			p.Coords = p.Coords[:n]
			clear(p.Coords)
		} else {
			p.Coords = make([]float64, n)
		}
	}
	if err := distance.CheckDims(p.Coords, other.Coords); err != nil {
		return translateError(err)
	}
	floats.Add(p.Coords, other.Coords)
	return nil
}

// Scale divides every coordinate by divisor.
func (p *Point) Scale(divisor float64) {
	floats.Scale(1/divisor, p.Coords)
}

// Clear drops all coordinates, leaving the point uninitialized.
func (p *Point) Clear() {
	p.Coords = p.Coords[:0]
}

// Clone returns a deep copy.
func (p Point) Clone() Point {
	return Point{Label: p.Label, Coords: slices.Clone(p.Coords)}
}

// String serializes the point as "label," (when labeled) followed by every
// coordinate with 12 fractional digits and a trailing comma.
func (p Point) String() string {
	var sb strings.Builder
	if p.Label != "" {
		sb.WriteString(p.Label)
		sb.WriteByte(',')
	}
	buf := make([]byte, 0, 32)
	for _, x := range p.Coords {
		buf = strconv.AppendFloat(buf[:0], x, 'f', 12, 64)
		sb.Write(buf)
		sb.WriteByte(',')
	}
	return sb.String()
}
