package bitset

import (
	"encoding/binary"
	"slices"

	"github.com/hupe1980/plwah/internal/word"
	"github.com/hupe1980/plwah/resource"
)

// Bitset is a compressed set of uint32 positions.
type Bitset struct {
	words []uint32
	ctrl  *resource.Controller
}

// New returns an empty Bitset.
func New(opts ...Option) *Bitset {
	o := applyOptions(opts)
	return &Bitset{ctrl: o.ctrl}
}

// Controller returns the resource controller the Bitset charges, or nil.
func (b *Bitset) Controller() *resource.Controller {
	return b.ctrl
}

// Len returns the number of words in use.
func (b *Bitset) Len() int {
	return len(b.words)
}

// Cap returns the number of allocated words.
func (b *Bitset) Cap() int {
	return cap(b.words)
}

// ByteLen returns the encoded size in bytes.
func (b *Bitset) ByteLen() int {
	return len(b.words) * word.Size
}

// IsEmpty reports whether no position is set.
func (b *Bitset) IsEmpty() bool {
	return len(b.words) == 0
}

// Resize grows the capacity to at least n words by doubling.
// Capacity never shrinks.
func (b *Bitset) Resize(n int) {
	b.reserve(n)
}

// Clear removes every position but keeps the allocated capacity.
func (b *Bitset) Clear() {
	b.words = b.words[:0]
}

// Release returns the buffer to the resource controller.
// The Bitset is empty afterwards and may be reused.
func (b *Bitset) Release() {
	b.ctrl.Shrink(int64(cap(b.words)) * word.Size)
	b.words = nil
}

// Words returns the encoded words. The slice aliases the Bitset and must not be modified.
func (b *Bitset) Words() []uint32 {
	return b.words
}

// Bytes returns the little-endian encoding of the words.
func (b *Bitset) Bytes() []byte {
	return b.AppendBytes(make([]byte, 0, b.ByteLen()))
}

// AppendBytes appends the little-endian encoding of the words to dst.
func (b *Bitset) AppendBytes(dst []byte) []byte {
	for _, w := range b.words {
		dst = binary.LittleEndian.AppendUint32(dst, w)
	}
	return dst
}

// Copy returns a deep copy sharing the resource controller.
func (b *Bitset) Copy() *Bitset {
	c := &Bitset{ctrl: b.ctrl}
	c.reserve(len(b.words))
	c.words = append(c.words, b.words...)
	return c
}

// Equal reports whether both Bitsets hold the same positions.
func (b *Bitset) Equal(other *Bitset) bool {
	return slices.Equal(b.words, other.words)
}

// reserve makes room for n words, doubling the capacity as needed.
func (b *Bitset) reserve(n int) {
	c := cap(b.words)
	if n <= c {
		return
	}
	if c == 0 {
		c = 1
	}
	for c < n {
		c <<= 1
	}
	b.resize(c)
}

// resize is the only place the word buffer is reallocated.
func (b *Bitset) resize(capacity int) {
	b.ctrl.Grow(int64(capacity-cap(b.words)) * word.Size)
	words := make([]uint32, len(b.words), capacity)
	copy(words, b.words)
	b.words = words
}

func (b *Bitset) append(ws ...uint32) {
	b.reserve(len(b.words) + len(ws))
	b.words = append(b.words, ws...)
}

// splice replaces words[i:j] with repl, shifting the tail.
func (b *Bitset) splice(i, j int, repl []uint32) {
	old := len(b.words)
	n := old - (j - i) + len(repl)
	if n > old {
		b.reserve(n)
		b.words = b.words[:n]
		copy(b.words[i+len(repl):], b.words[j:old])
	} else {
		copy(b.words[i+len(repl):], b.words[j:])
		b.words = b.words[:n]
	}
	copy(b.words[i:], repl)
}
