// Package estimate approximates the cardinality of bitsets and vectors.
//
// Estimates order the operands of an intersection so that the smallest one
// constrains the working set first. They need not be exact.
package estimate

import (
	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/internal/word"
	"github.com/hupe1980/plwah/vector"
)

// Estimator reports an approximate number of set positions.
type Estimator interface {
	EstimateBitset(b *bitset.Bitset) uint64
	EstimateVector(v *vector.Vector) uint64
}

// Popcount counts set positions exactly from the encoded words.
// It never expands positions and is the default estimator.
type Popcount struct{}

func (Popcount) EstimateBitset(b *bitset.Bitset) uint64 {
	return b.Count()
}

func (Popcount) EstimateVector(v *vector.Vector) uint64 {
	_, total := v.CountBits()
	return total
}

// Words estimates from encoded sizes alone, reading only record headers.
//
// Every literal holds up to 31 positions while a fill holds at most one, so the
// estimate is not monotonic in the true cardinality. Use it when the trees are
// large and operands are of similar density.
type Words struct{}

func (Words) EstimateBitset(b *bitset.Bitset) uint64 {
	return uint64(b.Len())
}

func (Words) EstimateVector(v *vector.Vector) uint64 {
	var n uint64
	for _, data := range v.All() {
		n += uint64(len(data) / word.Size)
	}
	return n
}

var (
	_ Estimator = Popcount{}
	_ Estimator = Words{}
	_ Estimator = (*Linear)(nil)
)
