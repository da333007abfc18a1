package kmcluster

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmcluster/distance"
)

var (
	// ErrInvalidK is returned when the requested cluster count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNotEnoughPoints is returned when fewer points than clusters were added.
	ErrNotEnoughPoints = errors.New("not enough points for the requested cluster count")

	// ErrNotClustered is returned by queries issued before Cluster completed,
	// or after points were added to an already clustered engine.
	ErrNotClustered = errors.New("engine has not been clustered")

	// ErrNonConvergent is returned together with a provisional Result when
	// refinement was halted by the pass guard instead of settling.
	// Callers may re-run with different seeding.
	ErrNonConvergent = errors.New("non-convergent clustering, inspect clusters to verify")

	// ErrClusterOutOfRange is returned when a cluster index is out of range.
	ErrClusterOutOfRange = errors.New("cluster index out of range")
)

// ErrDimensionMismatch indicates a point/point or point/engine dimensionality
// mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates a point without coordinates.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Left, Actual: dm.Right, cause: err}
	}

	return err
}

func isNonConvergent(err error) bool {
	return errors.Is(err, ErrNonConvergent)
}
