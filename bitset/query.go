package bitset

import "github.com/hupe1980/plwah/internal/word"

// Count returns the number of set positions.
func (b *Bitset) Count() uint64 {
	return countWords(b.words)
}

func countWords(words []uint32) uint64 {
	var n uint64
	for _, w := range words {
		if word.IsFill(w) {
			if word.Position(w) != 0 {
				n++
			}
			continue
		}
		n += uint64(word.PopCount(w))
	}
	return n
}

// Min returns the lowest set position.
// An empty Bitset returns 0, which does not mean that 0 is set.
func (b *Bitset) Min() uint32 {
	c := newCursor(b.words)
	if !c.advance() {
		return 0
	}
	return position(c.slot, word.First(c.lit))
}

// Max returns the highest set position, or 0 for an empty Bitset.
func (b *Bitset) Max() uint32 {
	c := newCursor(b.words)
	var (
		slot uint64
		lit  uint32
	)
	for c.advance() {
		slot, lit = c.slot, c.lit
	}
	if lit == 0 {
		return 0
	}
	return position(slot, word.Last(lit))
}
