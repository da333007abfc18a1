package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/kmcluster"
)

// ErrNoCoordinates is returned for a CSV line that carries a label but no
// coordinate fields.
var ErrNoCoordinates = errors.New("line has no coordinates")

const maxLineSize = 1 << 20

// ParseError reports the position of a malformed value.
// Line and Field are 1-based; the label is field 1 of a CSV line.
type ParseError struct {
	Name  string
	Line  int
	Field int
	Err   error
}

func (e *ParseError) Error() string {
	pos := fmt.Sprintf("line %d, field %d", e.Line, e.Field)
	if e.Name != "" {
		pos = e.Name + ": " + pos
	}
	return pos + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

// ParseFlat reads consecutive pairs of reals as unlabeled 2-D points.
// Pairs may span lines. A trailing unpaired value is ignored.
func ParseFlat(r io.Reader) ([]kmcluster.Point, error) {
	var (
		points  []kmcluster.Point
		pending []float64
	)

	sc := newScanner(r)
	for line := 1; sc.Scan(); line++ {
		for i, field := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Field: i + 1, Err: err}
			}
			pending = append(pending, v)
			if len(pending) == 2 {
				points = append(points, kmcluster.NewPoint(pending...))
				pending = pending[:0]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// ParseCSV reads one labeled point per line. Lines are split on commas
// without quoting rules and blank lines are skipped. All points must share
// the dimensionality of the first one.
func ParseCSV(r io.Reader) ([]kmcluster.Point, error) {
	var (
		points []kmcluster.Point
		dim    int
	)

	sc := newScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) < 2 {
			return nil, &ParseError{Line: line, Field: 2, Err: ErrNoCoordinates}
		}

		coords := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &ParseError{Line: line, Field: i + 2, Err: err}
			}
			coords[i] = v
		}

		if dim == 0 {
			dim = len(coords)
		} else if len(coords) != dim {
			return nil, &ParseError{
				Line:  line,
				Field: min(dim, len(coords)) + 2,
				Err:   &kmcluster.ErrDimensionMismatch{Expected: dim, Actual: len(coords)},
			}
		}

		points = append(points, kmcluster.Point{Label: fields[0], Coords: coords})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// Parse dispatches to the parser for f.
func Parse(r io.Reader, f Format) ([]kmcluster.Point, error) {
	switch f {
	case FormatFlat:
		return ParseFlat(r)
	case FormatCSV:
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}
