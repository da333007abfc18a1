// Package testutil provides testing utilities for kmcluster.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformVectors(100, 3)                 // uniform [0, 1)
//	blobs := rng.Blobs([][]float64{{0, 0}, {9, 9}}, 50, 0.2)
//
// # Scripted Seeding
//
//	src := testutil.NewFixedSource(0.5)
//	e, _ := kmcluster.New(2, kmcluster.WithRand(src))
package testutil
