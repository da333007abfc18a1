package kmcluster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/kmcluster/distance"
)

// Unassigned marks a point that has not been placed in any cluster yet.
const Unassigned = -1

// AssignmentRecord is the per-point bookkeeping of a run.
type AssignmentRecord struct {
	// ClusterID is the index of the owning cluster, or Unassigned.
	ClusterID int
	// SeedWeight is the running minimum distance to the centroids chosen so
	// far. Only meaningful during seeding.
	SeedWeight float64
}

// Engine partitions a point set into k clusters using weighted seeding
// followed by Lloyd refinement.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	k        int
	dim      int
	points   []Point
	records  []AssignmentRecord
	clusters []*Cluster

	clustered bool
	result    *Result

	opts     options
	logger   *Logger
	seedDist distance.Func
}

// New creates an engine targeting k clusters.
func New(k int, optFns ...Option) (*Engine, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	o := applyOptions(optFns)
	seedDist, err := distance.Provider(o.seedMetric)
	if err != nil {
		return nil, fmt.Errorf("seed metric: %w", err)
	}
	return &Engine{
		k:        k,
		opts:     o,
		logger:   o.logger.WithK(k),
		seedDist: seedDist,
	}, nil
}

// K returns the target cluster count.
func (e *Engine) K() int { return e.k }

// Dim returns the dimensionality fixed by the first added point, or zero.
func (e *Engine) Dim() int { return e.dim }

// Len returns the number of added points.
func (e *Engine) Len() int { return len(e.points) }

// Point returns a copy of the i-th added point.
func (e *Engine) Point(i int) Point { return e.points[i].Clone() }

// Add appends a point. The first point fixes the engine's dimensionality;
// every later point must match it.
func (e *Engine) Add(p Point) error {
	err := e.add(p)
	e.opts.metricsCollector.RecordAdd(err)
	return err
}

func (e *Engine) add(p Point) error {
	if p.Dim() == 0 {
		return &ErrInvalidDimension{Dimension: 0}
	}
	if e.dim == 0 {
		e.dim = p.Dim()
		e.logger = e.logger.WithDimension(e.dim)
	} else if p.Dim() != e.dim {
		return &ErrDimensionMismatch{Expected: e.dim, Actual: p.Dim()}
	}
	e.points = append(e.points, p.Clone())
	e.records = append(e.records, AssignmentRecord{ClusterID: Unassigned})
	e.clustered = false
	return nil
}

// AddAll appends every point, stopping at the first rejected one.
func (e *Engine) AddAll(points []Point) error {
	for i, p := range points {
		if err := e.Add(p); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

// Cluster selects k seeds and refines them until assignments settle.
//
// When the pass guard halts a run that is still reassigning points, the
// returned Result holds the last (provisional) assignment and err satisfies
// errors.Is(err, ErrNonConvergent). Any other error leaves the engine
// unclustered.
//
// Cluster re-runs from scratch when called again.
func (e *Engine) Cluster(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := e.logger.WithRunID(runID)

	passes, err := e.run(ctx, logger)

	logger.LogCluster(ctx, len(e.points), passes, err)
	e.opts.metricsCollector.RecordCluster(passes, time.Since(start), err)

	if err != nil && !isNonConvergent(err) {
		e.clustered = false
		return nil, err
	}

	e.clustered = true
	res, rerr := e.buildResult(runID, passes, err == nil)
	if rerr != nil {
		e.clustered = false
		return nil, rerr
	}
	e.result = res
	return res, err
}

func (e *Engine) run(ctx context.Context, logger *Logger) (int, error) {
	if e.k > len(e.points) {
		return 0, fmt.Errorf("%w: k=%d, points=%d", ErrNotEnoughPoints, e.k, len(e.points))
	}

	e.reset()

	if err := e.seed(ctx, logger); err != nil {
		return 0, err
	}
	return e.refine(ctx, logger)
}

func (e *Engine) reset() {
	e.clusters = e.clusters[:0]
	e.result = nil
	for i := range e.records {
		e.records[i] = AssignmentRecord{ClusterID: Unassigned}
	}
}

// Records returns a copy of the per-point assignment records.
func (e *Engine) Records() []AssignmentRecord {
	out := make([]AssignmentRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Clusters returns the clusters of the last run. The returned clusters must
// not be modified.
func (e *Engine) Clusters() []*Cluster {
	return e.clusters
}
