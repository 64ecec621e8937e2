// Package word encodes and decodes single 32-bit bitmap words.
//
// A word is either a literal or a fill:
//
//	literal  |0|b0 b1 b2 ............................. b30|
//	fill     |1| pos (5 bits) |     run length (26 bits)    |
//
// A literal stores 31 consecutive bit positions, b0 being the most significant
// payload bit. A fill elides runLength all-zero literal slots; when pos is
// non-zero the slot immediately after the run holds exactly one set bit at the
// 1-indexed position pos.
package word

import "math/bits"

const (
	// Size is the width of an encoded word in bytes.
	Size = 4

	// LiteralLength is the number of bit positions held by one literal slot.
	LiteralLength = 31

	// FillBit marks a word as a fill.
	FillBit uint32 = 1 << 31

	positionBits = 5
	spanBits     = 32 - positionBits - 1

	// PositionMask selects the 1-indexed position field of a fill.
	PositionMask uint32 = (1<<positionBits - 1) << spanBits

	// LengthMask selects the run length field of a fill.
	LengthMask uint32 = 1<<spanBits - 1

	// MaxLength is the longest run a single fill can encode.
	MaxLength = LengthMask

	literalHigh uint32 = FillBit >> 1
)

// Literal returns a literal word with only bit set. bit must be < LiteralLength.
func Literal(bit uint32) uint32 {
	return literalHigh >> bit
}

// Fill returns a fill eliding length empty slots followed by a slot with bit set.
func Fill(length, bit uint32) uint32 {
	return FillBit | (bit+1)<<spanBits | length
}

// EmptyFill returns a fill eliding length empty slots with no trailing bit.
func EmptyFill(length uint32) uint32 {
	return FillBit | length
}

// IsFill reports whether w is a fill word.
func IsFill(w uint32) bool {
	return w&FillBit != 0
}

// Length returns the run length of a fill word.
func Length(w uint32) uint32 {
	return w & LengthMask
}

// Position returns the 1-indexed trailing bit of a fill word, or 0 if there is none.
func Position(w uint32) uint32 {
	return (w & PositionMask) >> spanBits
}

// PopCount returns the number of set bits in a literal word.
func PopCount(w uint32) int {
	return bits.OnesCount32(w)
}

// First returns the lowest bit set in a non-zero literal.
func First(w uint32) uint32 {
	return uint32(bits.LeadingZeros32(w)) - 1
}

// Last returns the highest bit set in a non-zero literal.
func Last(w uint32) uint32 {
	return LiteralLength - 1 - uint32(bits.TrailingZeros32(w))
}

// Single reports whether the literal w has exactly one bit set.
func Single(w uint32) bool {
	return w != 0 && w&(w-1) == 0
}
