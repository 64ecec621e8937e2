package bitset

import (
	"encoding/binary"
	"slices"

	"github.com/hupe1980/plwah/internal/word"
)

// FromBits builds a Bitset from positions in any order. Duplicates are ignored.
func FromBits(bits []uint32, opts ...Option) *Bitset {
	if !slices.IsSorted(bits) {
		bits = slices.Clone(bits)
		slices.Sort(bits)
	}

	b := New(opts...)
	e := encoder{b: b}

	var (
		slot uint64
		lit  uint32
	)
	for _, bit := range bits {
		s, mask := locate(bit)
		if s != slot {
			e.emit(slot, lit)
			slot, lit = s, 0
		}
		lit |= mask
	}
	e.emit(slot, lit)
	return b
}

// FromWords builds a Bitset from a copy of words, which must be a canonical encoding.
func FromWords(words []uint32, opts ...Option) (*Bitset, error) {
	if err := validateWords(words); err != nil {
		return nil, err
	}
	b := New(opts...)
	b.append(words...)
	return b, nil
}

// FromBytes builds a Bitset from the little-endian encoding produced by Bytes.
func FromBytes(data []byte, opts ...Option) (*Bitset, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	b := New(opts...)
	b.reserve(len(data) / word.Size)
	b.words = decodeWords(b.words, data)
	return b, nil
}

// View decodes data without validating it. data must be a canonical encoding,
// for example a record payload of an imported vector.
func View(data []byte, opts ...Option) *Bitset {
	b := New(opts...)
	b.reserve(len(data) / word.Size)
	b.words = decodeWords(b.words, data)
	return b
}

// Validate reports whether data is a canonical encoding.
func Validate(data []byte) error {
	if len(data)%word.Size != 0 {
		return &DecodeError{Word: len(data) / word.Size, Reason: "truncated word"}
	}
	return validateWords(decodeWords(make([]uint32, 0, len(data)/word.Size), data))
}

// CountBytes counts the positions set in an encoded buffer without decoding it
// into a Bitset. A trailing partial word is ignored.
func CountBytes(data []byte) uint64 {
	var n uint64
	for len(data) >= word.Size {
		w := binary.LittleEndian.Uint32(data)
		data = data[word.Size:]
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

func decodeWords(dst []uint32, data []byte) []uint32 {
	for i := 0; i+word.Size <= len(data); i += word.Size {
		dst = append(dst, binary.LittleEndian.Uint32(data[i:]))
	}
	return dst
}

// validateWords re-encodes every occupied slot and compares it with the input.
func validateWords(words []uint32) error {
	var buf [8]uint32
	c := newCursor(words)
	for c.advance() {
		if c.lit == 0 {
			return &DecodeError{Word: c.pos - 1, Reason: "empty literal"}
		}
		if c.slot > maxSlot || position(c.slot, word.Last(c.lit)) < position(c.slot, 0) {
			return &DecodeError{Word: c.pos - 1, Reason: "position exceeds uint32"}
		}
		if !slices.Equal(appendChunk(buf[:0], c.slot-c.base, c.lit), words[c.start:c.pos]) {
			return &DecodeError{Word: c.start, Reason: "non-canonical run"}
		}
	}
	if c.start != len(words) {
		return &DecodeError{Word: c.start, Reason: "trailing fill without position"}
	}
	return nil
}
