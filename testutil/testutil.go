package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// Blobs generates perCenter points around every center with Gaussian noise
// of the given standard deviation. Points are grouped by center, in center
// order.
func (r *RNG) Blobs(centers [][]float64, perCenter int, stddev float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float64, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			vec := make([]float64, len(c))
			for j := range vec {
				vec[j] = c[j] + r.rand.NormFloat64()*stddev
			}
			vectors = append(vectors, vec)
		}
	}
	return vectors
}

// FixedSource replays a fixed sequence of draws, cycling when exhausted.
// It lets tests steer weighted seeding deterministically.
type FixedSource struct {
	values []float64
	next   int
	mu     sync.Mutex
}

// NewFixedSource creates a source returning values in order. Values must be
// in [0, 1).
func NewFixedSource(values ...float64) *FixedSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &FixedSource{values: values}
}

// Float64 returns the next scripted value.
func (f *FixedSource) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// Calls returns how many values were drawn so far.
func (f *FixedSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}
