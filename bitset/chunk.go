package bitset

import (
	"math"

	"github.com/hupe1980/plwah/internal/word"
)

// maxSlot is the last slot that can hold a uint32 position.
const maxSlot = math.MaxUint32 / word.LiteralLength

// cursor walks the occupied slots of an encoding.
//
// After a successful advance, slot and lit describe the occupied slot,
// words[start:pos] are the words encoding it and base is the first slot
// after the previously occupied one.
type cursor struct {
	words []uint32
	pos   int
	next  uint64

	start int
	base  uint64
	slot  uint64
	lit   uint32
}

func newCursor(words []uint32) cursor {
	return cursor{words: words}
}

func (c *cursor) advance() bool {
	c.start = c.pos
	c.base = c.next
	for c.pos < len(c.words) {
		w := c.words[c.pos]
		c.pos++
		if !word.IsFill(w) {
			c.slot, c.lit = c.next, w
			c.next++
			return true
		}
		c.next += uint64(word.Length(w))
		if p := word.Position(w); p != 0 {
			c.slot, c.lit = c.next, word.Literal(p-1)
			c.next++
			return true
		}
	}
	return false
}

// appendChunk appends the canonical words for an occupied slot holding lit,
// preceded by gap empty slots.
func appendChunk(dst []uint32, gap uint64, lit uint32) []uint32 {
	for gap > uint64(word.MaxLength) {
		dst = append(dst, word.EmptyFill(word.MaxLength))
		gap -= uint64(word.MaxLength)
	}
	if gap > 0 {
		if word.Single(lit) {
			return append(dst, word.Fill(uint32(gap), word.First(lit)))
		}
		dst = append(dst, word.EmptyFill(uint32(gap)))
	}
	return append(dst, lit)
}

// encoder appends occupied slots in ascending order to a Bitset.
type encoder struct {
	b    *Bitset
	next uint64
	buf  [8]uint32
}

func (e *encoder) emit(slot uint64, lit uint32) {
	if lit == 0 {
		return
	}
	e.b.append(appendChunk(e.buf[:0], slot-e.next, lit)...)
	e.next = slot + 1
}

func locate(bit uint32) (uint64, uint32) {
	return uint64(bit / word.LiteralLength), word.Literal(bit % word.LiteralLength)
}

func position(slot uint64, bit uint32) uint32 {
	return uint32(slot*word.LiteralLength) + bit
}
