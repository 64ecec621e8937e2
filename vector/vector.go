// Package vector packs many compressed bitsets into one byte buffer.
//
// Each record is
//
//	<varint delta> <varint length> <length bytes of bitset words>
//
// where delta is the distance from the previous record's offset (from 0 for
// the first record). Offsets are therefore non-decreasing and iteration
// reports absolute offsets.
package vector

import (
	"iter"
	"math"

	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/resource"
)

// Vector is an offset-ordered sequence of bitsets stored back to back.
type Vector struct {
	buf   []byte
	ctrl  *resource.Controller
	count int
	first uint32
	last  uint32
}

// New returns an empty Vector.
func New(opts ...Option) *Vector {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Vector{ctrl: o.ctrl}
}

// Import validates data and returns a Vector holding a copy of it.
func Import(data []byte, opts ...Option) (*Vector, error) {
	v := New(opts...)

	var offset uint64
	for pos := 0; pos < len(data); {
		delta, n := readVarint(data[pos:])
		if n == 0 {
			return nil, &DecodeError{Offset: pos, Reason: "truncated offset"}
		}
		length, m := readVarint(data[pos+n:])
		if m == 0 {
			return nil, &DecodeError{Offset: pos, Reason: "truncated length"}
		}
		start := pos + n + m
		if int(length) > len(data)-start {
			return nil, &DecodeError{Offset: pos, Reason: "payload exceeds buffer"}
		}
		offset += uint64(delta)
		if offset > math.MaxUint32 {
			return nil, &DecodeError{Offset: pos, Reason: "offset overflow"}
		}
		if err := bitset.Validate(data[start : start+int(length)]); err != nil {
			return nil, &DecodeError{Offset: pos, Reason: "invalid bitset", Err: err}
		}
		if v.count == 0 {
			v.first = uint32(offset)
		}
		v.last = uint32(offset)
		v.count++
		pos = start + int(length)
	}

	v.reserve(len(data))
	v.buf = append(v.buf, data...)
	return v, nil
}

// Push appends b at offset. Offsets must be pushed in non-decreasing order.
func (v *Vector) Push(b *bitset.Bitset, offset uint32) error {
	hdr, err := v.header(offset, b.ByteLen())
	if err != nil {
		return err
	}
	v.reserve(len(v.buf) + len(hdr) + b.ByteLen())
	v.buf = b.AppendBytes(append(v.buf, hdr...))
	v.record(offset)
	return nil
}

// PushBytes appends the encoded bitset data at offset after validating it.
func (v *Vector) PushBytes(data []byte, offset uint32) error {
	if err := bitset.Validate(data); err != nil {
		return err
	}
	hdr, err := v.header(offset, len(data))
	if err != nil {
		return err
	}
	v.reserve(len(v.buf) + len(hdr) + len(data))
	v.buf = append(append(v.buf, hdr...), data...)
	v.record(offset)
	return nil
}

// Concat appends every record of other with base added to its offset.
// other is not modified.
func (v *Vector) Concat(other *Vector, base uint32) error {
	if other.count == 0 {
		return nil
	}
	if uint64(base)+uint64(other.last) > math.MaxUint32 {
		return ErrValueTooLarge
	}

	// Only the first header changes; later deltas are relative.
	_, n := readVarint(other.buf)
	length, m := readVarint(other.buf[n:])
	hdr, err := v.header(base+other.first, int(length))
	if err != nil {
		return err
	}
	rest := other.buf[n+m:]
	v.reserve(len(v.buf) + len(hdr) + len(rest))
	v.buf = append(append(v.buf, hdr...), rest...)

	if v.count == 0 {
		v.first = base + other.first
	}
	v.count += other.count
	v.last = base + other.last
	return nil
}

// All yields every record as (offset, encoded bitset). The bytes alias the Vector.
func (v *Vector) All() iter.Seq2[uint32, []byte] {
	return func(yield func(uint32, []byte) bool) {
		var offset uint32
		for pos := 0; pos < len(v.buf); {
			delta, n := readVarint(v.buf[pos:])
			length, m := readVarint(v.buf[pos+n:])
			start := pos + n + m
			pos = start + int(length)
			offset += delta
			if !yield(offset, v.buf[start:pos]) {
				return
			}
		}
	}
}

// Bitsets yields every record decoded into a Bitset.
func (v *Vector) Bitsets() iter.Seq2[uint32, *bitset.Bitset] {
	return func(yield func(uint32, *bitset.Bitset) bool) {
		for offset, data := range v.All() {
			if !yield(offset, bitset.View(data)) {
				return
			}
		}
	}
}

// CountBits returns the number of set positions per record and their total.
func (v *Vector) CountBits() ([]uint64, uint64) {
	counts := make([]uint64, 0, v.count)
	var total uint64
	for _, data := range v.All() {
		n := bitset.CountBytes(data)
		counts = append(counts, n)
		total += n
	}
	return counts, total
}

// Merge returns the union of every record, ignoring offsets.
func (v *Vector) Merge() *bitset.Bitset {
	acc := bitset.New(bitset.WithController(v.ctrl))
	for _, b := range v.Bitsets() {
		next := bitset.Or(acc, b)
		acc.Release()
		acc = next
	}
	return acc
}

// Copy returns a deep copy sharing the resource controller.
func (v *Vector) Copy() *Vector {
	c := &Vector{ctrl: v.ctrl, count: v.count, first: v.first, last: v.last}
	c.reserve(len(v.buf))
	c.buf = append(c.buf, v.buf...)
	return c
}

// Bytes returns the encoded buffer. It aliases the Vector.
func (v *Vector) Bytes() []byte { return v.buf }

// Len returns the encoded size in bytes.
func (v *Vector) Len() int { return len(v.buf) }

// Cap returns the allocated size in bytes.
func (v *Vector) Cap() int { return cap(v.buf) }

// Count returns the number of records.
func (v *Vector) Count() int { return v.count }

// IsEmpty reports whether the Vector holds no records.
func (v *Vector) IsEmpty() bool { return v.count == 0 }

// Bounds returns the lowest and highest record offsets.
func (v *Vector) Bounds() (lo, hi uint32, ok bool) {
	return v.first, v.last, v.count > 0
}

// Controller returns the resource controller the Vector charges, or nil.
func (v *Vector) Controller() *resource.Controller { return v.ctrl }

// Resize grows the capacity to at least n bytes. Capacity never shrinks.
func (v *Vector) Resize(n int) { v.reserve(n) }

// Release returns the buffer to the resource controller and empties the Vector.
func (v *Vector) Release() {
	v.ctrl.Shrink(int64(cap(v.buf)))
	v.buf = nil
	v.count, v.first, v.last = 0, 0, 0
}

func (v *Vector) header(offset uint32, length int) ([]byte, error) {
	if v.count > 0 && offset < v.last {
		return nil, ErrOffsetOrder
	}
	if length > MaxValue {
		return nil, ErrValueTooLarge
	}
	hdr, err := appendVarint(make([]byte, 0, 8), offset-v.last)
	if err != nil {
		return nil, err
	}
	return appendVarint(hdr, uint32(length))
}

func (v *Vector) record(offset uint32) {
	if v.count == 0 {
		v.first = offset
	}
	v.last = offset
	v.count++
}

func (v *Vector) reserve(n int) {
	c := cap(v.buf)
	if n <= c {
		return
	}
	if c == 0 {
		c = 1
	}
	for c < n {
		c <<= 1
	}
	v.ctrl.Grow(int64(c - cap(v.buf)))
	buf := make([]byte, len(v.buf), c)
	copy(buf, v.buf)
	v.buf = buf
}
