package testutil

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Uint32N returns a pseudo-random number in [0,n).
func (r *RNG) Uint32N(n uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32N(n)
}

// Bits returns n positions drawn uniformly from [0,span), unsorted and
// possibly repeated.
func (r *RNG) Bits(n int, span uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	bits := make([]uint32, n)
	for i := range bits {
		bits[i] = r.rand.Uint32N(span)
	}
	return bits
}

// SortedBits is Bits sorted and without duplicates.
func (r *RNG) SortedBits(n int, span uint32) []uint32 {
	bits := r.Bits(n, span)
	slices.Sort(bits)
	return slices.Compact(bits)
}

// ClusteredBits returns runs of runLen consecutive positions starting at
// random points below span. The result is sorted without duplicates.
// Clustered sets produce literal-heavy encodings; uniform sparse sets
// produce fill-heavy ones.
func (r *RNG) ClusteredBits(runs, runLen int, span uint32) []uint32 {
	r.mu.Lock()
	bits := make([]uint32, 0, runs*runLen)
	for i := 0; i < runs; i++ {
		start := r.rand.Uint32N(span)
		for j := 0; j < runLen && start+uint32(j) >= start; j++ {
			bits = append(bits, start+uint32(j))
		}
	}
	r.mu.Unlock()

	slices.Sort(bits)
	return slices.Compact(bits)
}

// Oracle returns a roaring bitmap holding bits.
func Oracle(bits []uint32) *roaring.Bitmap {
	return roaring.BitmapOf(bits...)
}
