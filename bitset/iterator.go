package bitset

import (
	"iter"

	"github.com/hupe1980/plwah/internal/word"
)

// All yields the set positions in ascending order.
func (b *Bitset) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		c := newCursor(b.words)
		for c.advance() {
			for lit := c.lit; lit != 0; {
				bit := word.First(lit)
				if !yield(position(c.slot, bit)) {
					return
				}
				lit &^= word.Literal(bit)
			}
		}
	}
}

// Iterator returns a point-in-time snapshot of the set positions.
func (b *Bitset) Iterator() *Iterator {
	return NewIterator(b)
}

// Iterator is a materialized, ascending list of set positions.
// It does not observe later mutations of its source.
type Iterator struct {
	offsets []uint32
}

// NewIterator materializes the positions of b.
func NewIterator(b *Bitset) *Iterator {
	offsets := make([]uint32, 0, b.Count())
	for bit := range b.All() {
		offsets = append(offsets, bit)
	}
	return &Iterator{offsets: offsets}
}

// Len returns the number of positions.
func (it *Iterator) Len() int { return len(it.offsets) }

// At returns the i-th smallest position.
func (it *Iterator) At(i int) uint32 { return it.offsets[i] }

// Offsets returns the positions. The slice aliases the Iterator.
func (it *Iterator) Offsets() []uint32 { return it.offsets }

// All yields the positions in ascending order.
func (it *Iterator) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, o := range it.offsets {
			if !yield(o) {
				return
			}
		}
	}
}
