package kmcluster

import (
	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/stat"
)

// Cluster owns a centroid and the indices of its member points.
//
// Membership is keyed by position in the engine's point list, so distinct
// points with equal coordinates are never merged.
type Cluster struct {
	centroid Point
	members  *roaring.Bitmap
}

// newCluster creates a cluster seeded with the point at idx as both centroid
// and sole member.
func newCluster(points []Point, idx int) *Cluster {
	c := &Cluster{
		centroid: Point{Coords: points[idx].Clone().Coords},
		members:  roaring.New(),
	}
	c.Insert(idx)
	return c
}

// Insert adds the point index to the cluster.
func (c *Cluster) Insert(idx int) {
	c.members.Add(uint32(idx))
}

// Remove drops the point index. Removing an absent index is a no-op.
func (c *Cluster) Remove(idx int) {
	c.members.Remove(uint32(idx))
}

// Contains reports whether idx is a member.
func (c *Cluster) Contains(idx int) bool {
	return c.members.Contains(uint32(idx))
}

// Size returns the number of members.
func (c *Cluster) Size() int {
	return int(c.members.GetCardinality())
}

// Members returns the member indices in ascending order.
func (c *Cluster) Members() []int {
	out := make([]int, 0, c.Size())
	it := c.members.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Centroid returns a copy of the current centroid.
func (c *Cluster) Centroid() Point {
	return c.centroid.Clone()
}

// RecomputeCentroid sets the centroid to the mean of the members.
//
// An empty cluster keeps its shape and gets every coordinate set to
// FallbackCoordinate; the engine may re-center it afterwards according to
// its EmptyClusterPolicy. It reports whether the cluster was empty.
func (c *Cluster) RecomputeCentroid(points []Point) (bool, error) {
	if c.members.IsEmpty() {
		for i := range c.centroid.Coords {
			c.centroid.Coords[i] = FallbackCoordinate
		}
		return true, nil
	}

	c.centroid.Clear()
	it := c.members.Iterator()
	for it.HasNext() {
		if err := c.centroid.Accumulate(points[it.Next()]); err != nil {
			return false, err
		}
	}
	c.centroid.Scale(float64(c.Size()))
	return false, nil
}

// Spread returns the mean distance from every member to the centroid.
// An empty cluster has a spread of zero.
func (c *Cluster) Spread(points []Point) (float64, error) {
	if c.members.IsEmpty() {
		return 0, nil
	}
	dists := make([]float64, 0, c.Size())
	it := c.members.Iterator()
	for it.HasNext() {
		d, err := points[it.Next()].Distance(c.centroid)
		if err != nil {
			return 0, err
		}
		dists = append(dists, d)
	}
	return stat.Mean(dists, nil), nil
}

func (c *Cluster) setCentroid(p Point) {
	c.centroid.Coords = append(c.centroid.Coords[:0], p.Coords...)
}
