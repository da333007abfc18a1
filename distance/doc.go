// Package distance provides the float64 distance kernels used by the
// clustering engine.
//
// All functions require equal-length inputs and report a mismatch as an
// error instead of returning a number computed over a truncated range.
package distance
