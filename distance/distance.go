package distance

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch indicates that two vectors of different length were
// compared.
type ErrDimensionMismatch struct {
	Left  int
	Right int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: %d != %d", e.Left, e.Right)
}

// CheckDims returns *ErrDimensionMismatch if a and b differ in length.
func CheckDims(a, b []float64) error {
	if len(a) != len(b) {
		return &ErrDimensionMismatch{Left: len(a), Right: len(b)}
	}
	return nil
}

// Euclidean calculates the L2 distance between two vectors.
func Euclidean(a, b []float64) (float64, error) {
	if err := CheckDims(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 2), nil
}

// SquaredEuclidean calculates the squared L2 distance between two vectors.
func SquaredEuclidean(a, b []float64) (float64, error) {
	if err := CheckDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, nil
}

// Metric represents the distance metric used for point comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricSquaredEuclidean:
		return "SquaredEuclidean"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) (float64, error)

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
