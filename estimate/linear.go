package estimate

import (
	"encoding/binary"
	"math"

	dense "github.com/bits-and-blooms/bitset"
	"github.com/zeebo/xxh3"

	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/vector"
)

// DefaultLinearSize is the register size used when NewLinear is given 0.
const DefaultLinearSize = 1 << 16

// Linear is a linear counting estimator of distinct (offset, position) pairs.
//
// Every pair is hashed into a fixed register of m bits. With z bits still
// clear the cardinality is approximately -m*ln(z/m). Memory use is m/8 bytes
// regardless of how many positions are added, which makes it suitable for the
// union of many large vectors.
type Linear struct {
	m   uint
	reg *dense.BitSet
}

// NewLinear returns an estimator with an m-bit register.
func NewLinear(m uint) *Linear {
	if m == 0 {
		m = DefaultLinearSize
	}
	return &Linear{m: m, reg: dense.New(m)}
}

// AddBitset adds the positions of b at offset.
func (l *Linear) AddBitset(offset uint32, b *bitset.Bitset) {
	for bit := range b.All() {
		l.add(offset, bit)
	}
}

// AddVector adds every record of v.
func (l *Linear) AddVector(v *vector.Vector) {
	for offset, b := range v.Bitsets() {
		l.AddBitset(offset, b)
	}
}

// Estimate returns the approximate number of distinct pairs added so far.
func (l *Linear) Estimate() uint64 {
	zeros := l.m - l.reg.Count()
	if zeros == 0 {
		// Saturated; the true count is at least this large.
		return uint64(float64(l.m) * math.Log(float64(l.m)))
	}
	return uint64(math.Round(-float64(l.m) * math.Log(float64(zeros)/float64(l.m))))
}

// Reset clears the register.
func (l *Linear) Reset() {
	l.reg.ClearAll()
}

// EstimateBitset estimates b alone, leaving the register untouched.
func (l *Linear) EstimateBitset(b *bitset.Bitset) uint64 {
	tmp := NewLinear(l.m)
	tmp.AddBitset(0, b)
	return tmp.Estimate()
}

// EstimateVector estimates v alone, leaving the register untouched.
func (l *Linear) EstimateVector(v *vector.Vector) uint64 {
	tmp := NewLinear(l.m)
	tmp.AddVector(v)
	return tmp.Estimate()
}

func (l *Linear) add(offset, bit uint32) {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], uint64(offset)<<32|uint64(bit))
	l.reg.Set(uint(xxh3.Hash(key[:]) % uint64(l.m)))
}
