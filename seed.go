package kmcluster

import (
	"context"
	"fmt"
)

// seed picks k initial centroids. Points far from the centroids chosen so
// far are proportionally more likely to be picked next.
func (e *Engine) seed(ctx context.Context, logger *Logger) error {
	for round := 0; round < e.k; round++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("seeding round %d: %w", round, err)
		}
		if err := e.weightPoints(); err != nil {
			return err
		}
		idx, total := e.drawSeed()
		e.addSeed(idx)
		logger.LogSeed(ctx, round, idx, total)
	}
	return nil
}

// weightPoints folds the newest centroid into every point's running minimum
// distance, measured with the configured seed metric. On the first round every point weighs 1. On the second round the
// weight starts from the distance to the first centroid rather than from that
// uniform 1, so the running minimum always covers every chosen centroid.
func (e *Engine) weightPoints() error {
	if len(e.clusters) == 0 {
		for i := range e.records {
			e.records[i].SeedWeight = 1
		}
		return nil
	}

	first := len(e.clusters) == 1
	newest := e.clusters[len(e.clusters)-1].centroid
	for i := range e.points {
		d, err := e.seedDist(e.points[i].Coords, newest.Coords)
		if err != nil {
			return translateError(err)
		}
		if first || d < e.records[i].SeedWeight {
			e.records[i].SeedWeight = d
		}
	}
	return nil
}

// drawSeed draws u in [0, total) and returns the first point whose
// cumulative weight exceeds u. When every weight is zero no point exceeds
// the draw and the last point scanned is returned.
func (e *Engine) drawSeed() (int, float64) {
	total := e.totalWeight()
	pick := e.opts.rand.Float64() * total

	var running float64
	for i := range e.records {
		w := e.records[i].SeedWeight
		if running+w > pick {
			return i, total
		}
		running += w
	}
	return len(e.records) - 1, total
}

func (e *Engine) totalWeight() float64 {
	var total float64
	for i := range e.records {
		total += e.records[i].SeedWeight
	}
	return total
}

// addSeed creates a cluster around the point at idx. The point becomes the
// cluster's sole initial member; if an earlier seed already claimed it, it
// moves to the new cluster so that memberships stay disjoint.
func (e *Engine) addSeed(idx int) {
	if prev := e.records[idx].ClusterID; prev != Unassigned {
		e.clusters[prev].Remove(idx)
	}
	e.clusters = append(e.clusters, newCluster(e.points, idx))
	e.records[idx].ClusterID = len(e.clusters) - 1
}
