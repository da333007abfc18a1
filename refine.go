package kmcluster

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// refine runs Lloyd's algorithm: assign every point to its nearest centroid,
// then recompute centroids, until a pass moves no point and no empty cluster
// was re-centered. A run that is still moving after maxPasses passes is
// halted with ErrNonConvergent.
//
// It returns the number of assignment passes performed.
func (e *Engine) refine(ctx context.Context, logger *Logger) (int, error) {
	progress := e.progress()

	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return pass - 1, fmt.Errorf("refinement pass %d: %w", pass, err)
		}

		reassigned, err := e.assignAll()
		if err != nil {
			return pass, err
		}
		e.opts.metricsCollector.RecordPass(reassigned)
		progress.Do(func() { logger.LogPass(ctx, pass, reassigned) })

		reseeded, err := e.recomputeCentroids(ctx, logger)
		if err != nil {
			return pass, err
		}

		if reassigned == 0 && !reseeded {
			return pass, nil
		}
		if pass > e.opts.maxPasses {
			return pass, fmt.Errorf("%w: %d points still moving after %d passes",
				ErrNonConvergent, reassigned, pass)
		}
	}
}

func (e *Engine) progress() *rate.Sometimes {
	if e.opts.logEvery <= 0 {
		return &rate.Sometimes{Every: 1}
	}
	return &rate.Sometimes{Interval: e.opts.logEvery}
}

// assignAll moves every point to its nearest cluster and returns how many
// points changed cluster.
func (e *Engine) assignAll() (int, error) {
	reassigned := 0
	for i := range e.points {
		c, _, err := e.nearest(e.points[i])
		if err != nil {
			return reassigned, err
		}
		rec := &e.records[i]
		if c == rec.ClusterID {
			continue
		}
		if rec.ClusterID != Unassigned {
			e.clusters[rec.ClusterID].Remove(i)
		}
		e.clusters[c].Insert(i)
		rec.ClusterID = c
		reassigned++
	}
	return reassigned, nil
}

// nearest returns the index of the cluster whose centroid is closest to p.
// Ties go to the lowest index.
func (e *Engine) nearest(p Point) (int, float64, error) {
	closest := 0
	best, err := e.clusters[0].centroid.Distance(p)
	if err != nil {
		return 0, 0, err
	}
	for i := 1; i < len(e.clusters); i++ {
		d, err := e.clusters[i].centroid.Distance(p)
		if err != nil {
			return 0, 0, err
		}
		if d < best {
			best = d
			closest = i
		}
	}
	return closest, best, nil
}

// recomputeCentroids recomputes every centroid and applies the empty-cluster
// policy. It reports whether an empty cluster was moved onto a point.
func (e *Engine) recomputeCentroids(ctx context.Context, logger *Logger) (bool, error) {
	var empty []int
	for i, c := range e.clusters {
		wasEmpty, err := c.RecomputeCentroid(e.points)
		if err != nil {
			return false, err
		}
		if wasEmpty {
			empty = append(empty, i)
		}
	}

	if len(empty) == 0 {
		return false, nil
	}
	for _, i := range empty {
		logger.LogEmptyCluster(ctx, i, e.opts.emptyPolicy)
	}
	if e.opts.emptyPolicy == EmptyReseedFarthest {
		return e.reseedEmpty(empty)
	}
	return false, nil
}

// reseedEmpty moves the centroid of every empty cluster onto the point that
// lies farthest from the centroid of its own cluster. Each point is used at
// most once. When every point sits on its centroid there is nothing to split
// and the fallback centroid is kept.
func (e *Engine) reseedEmpty(empty []int) (bool, error) {
	reseeded := false
	used := make(map[int]struct{}, len(empty))
	for _, ci := range empty {
		far, farDist := -1, 0.0
		for i := range e.points {
			if _, ok := used[i]; ok {
				continue
			}
			owner := e.records[i].ClusterID
			if owner == Unassigned || e.clusters[owner].Size() == 0 {
				continue
			}
			d, err := e.points[i].Distance(e.clusters[owner].centroid)
			if err != nil {
				return false, err
			}
			if d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			continue
		}
		used[far] = struct{}{}
		e.clusters[ci].setCentroid(e.points[far])
		reseeded = true
	}
	return reseeded, nil
}
