package bitset

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	dense "github.com/bits-and-blooms/bitset"
)

// ToRoaring converts b into a roaring bitmap.
func (b *Bitset) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	rb.AddMany(NewIterator(b).Offsets())
	return rb
}

// FromRoaring builds a Bitset holding the positions of rb.
func FromRoaring(rb *roaring.Bitmap, opts ...Option) *Bitset {
	return FromBits(rb.ToArray(), opts...)
}

// ToDense converts b into an uncompressed bitset sized to its highest position.
func (b *Bitset) ToDense() *dense.BitSet {
	if b.IsEmpty() {
		return dense.New(0)
	}
	d := dense.New(uint(b.Max()) + 1)
	for bit := range b.All() {
		d.Set(uint(bit))
	}
	return d
}

// FromDense builds a Bitset holding the positions of d that fit in a uint32.
func FromDense(d *dense.BitSet, opts ...Option) *Bitset {
	bits := make([]uint32, 0, d.Count())
	for i, ok := d.NextSet(0); ok && i <= math.MaxUint32; i, ok = d.NextSet(i + 1) {
		bits = append(bits, uint32(i))
	}
	return FromBits(bits, opts...)
}
