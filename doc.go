// Package kmcluster partitions labeled points of any dimensionality into a
// fixed number of clusters.
//
// Seeding picks initial centroids with probability proportional to each
// point's distance from the centroids chosen so far (a K-means++ variant).
// Refinement then alternates nearest-centroid assignment and centroid
// recomputation (Lloyd's algorithm) until no point changes cluster.
//
// # Quick Start
//
//	e, _ := kmcluster.New(3, kmcluster.WithSeed(42))
//	for _, p := range points {
//	    if err := e.Add(p); err != nil { ... }
//	}
//	res, err := e.Cluster(ctx)
//	if errors.Is(err, kmcluster.ErrNonConvergent) {
//	    // res holds a provisional partition
//	}
//	kmcluster.WriteClusterSets(os.Stdout, e)
//
// # Convergence
//
// Lloyd's algorithm usually settles quickly but is not guaranteed to. A run
// that is still reassigning points after DefaultMaxPasses passes (see
// WithMaxPasses) is halted. Cluster then returns the last assignment along
// with an error wrapping ErrNonConvergent. The budget applies to a single
// Cluster call.
//
// # Empty Clusters
//
// A cluster that loses every member is re-centered according to its
// EmptyClusterPolicy: by default onto the point farthest from its own
// centroid, or optionally onto the constant FallbackCoordinate.
//
// # Dimensionality
//
// The first added point fixes the engine's dimensionality. Points of any
// other dimensionality are rejected with *ErrDimensionMismatch, and distance
// between points of unequal length never yields a number.
package kmcluster
