package kmcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterMembership(t *testing.T) {
	// 0 and 1 share a coordinate sum but are distinct points
	points := []Point{NewPoint(1, 2), NewPoint(2, 1), NewPoint(1, 2)}
	c := newCluster(points, 0)

	assert.Equal(t, 1, c.Size())
	assert.Equal(t, points[0].Coords, c.Centroid().Coords)

	c.Insert(1)
	c.Insert(2)
	c.Insert(2)
	assert.Equal(t, 3, c.Size())
	assert.Equal(t, []int{0, 1, 2}, c.Members())

	c.Remove(1)
	c.Remove(1)
	c.Remove(42)
	assert.Equal(t, []int{0, 2}, c.Members())
	assert.True(t, c.Contains(2))
	assert.False(t, c.Contains(1))
}

func TestClusterCentroidIsCopy(t *testing.T) {
	points := []Point{NewPoint(1, 1)}
	c := newCluster(points, 0)

	got := c.Centroid()
	got.Coords[0] = 100
	assert.Equal(t, 1.0, c.Centroid().Coords[0])

	_, err := c.RecomputeCentroid(points)
	require.NoError(t, err)
	assert.Equal(t, 1.0, points[0].Coords[0])
}

func TestRecomputeCentroid(t *testing.T) {
	points := []Point{NewPoint(0, 0), NewPoint(2, 0), NewPoint(1, 3)}
	c := newCluster(points, 0)
	c.Insert(1)
	c.Insert(2)

	empty, err := c.RecomputeCentroid(points)
	require.NoError(t, err)
	assert.False(t, empty)
	first := c.Centroid()
	assert.InDeltaSlice(t, []float64{1, 1}, first.Coords, 1e-12)

	_, err = c.RecomputeCentroid(points)
	require.NoError(t, err)
	assert.InDeltaSlice(t, first.Coords, c.Centroid().Coords, 1e-12)
}

func TestRecomputeCentroidEmpty(t *testing.T) {
	points := []Point{NewPoint(7, 8, 9)}
	c := newCluster(points, 0)
	c.Remove(0)

	empty, err := c.RecomputeCentroid(points)
	require.NoError(t, err)
	assert.True(t, empty)
	assert.Equal(t, []float64{FallbackCoordinate, FallbackCoordinate, FallbackCoordinate}, c.Centroid().Coords)
}

func TestClusterSpread(t *testing.T) {
	points := []Point{NewPoint(0, 0), NewPoint(2, 0), NewPoint(1, 0)}
	c := newCluster(points, 0)
	c.Insert(1)
	_, err := c.RecomputeCentroid(points)
	require.NoError(t, err)

	spread, err := c.Spread(points)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, spread, 1e-12)

	c.Remove(0)
	c.Remove(1)
	spread, err = c.Spread(points)
	require.NoError(t, err)
	assert.Zero(t, spread)
}
