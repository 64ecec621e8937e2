package bitset

// Get reports whether bit is set.
func (b *Bitset) Get(bit uint32) bool {
	slot, mask := locate(bit)
	c := newCursor(b.words)
	for c.advance() {
		if c.slot == slot {
			return c.lit&mask != 0
		}
		if c.slot > slot {
			return false
		}
	}
	return false
}

// SetTo sets or clears bit and returns its previous value.
func (b *Bitset) SetTo(bit uint32, value bool) bool {
	if value {
		return b.Set(bit)
	}
	return b.Unset(bit)
}

// Set sets bit and returns its previous value.
func (b *Bitset) Set(bit uint32) bool {
	slot, mask := locate(bit)

	var buf [8]uint32
	c := newCursor(b.words)
	for c.advance() {
		switch {
		case c.slot == slot:
			if c.lit&mask != 0 {
				return true
			}
			b.splice(c.start, c.pos, appendChunk(buf[:0], slot-c.base, c.lit|mask))
			return false
		case c.slot > slot:
			// bit falls inside the gap in front of this slot: split it.
			repl := appendChunk(buf[:0], slot-c.base, mask)
			repl = appendChunk(repl, c.slot-slot-1, c.lit)
			b.splice(c.start, c.pos, repl)
			return false
		}
	}
	b.splice(c.start, len(b.words), appendChunk(buf[:0], slot-c.base, mask))
	return false
}

// Unset clears bit and returns its previous value.
func (b *Bitset) Unset(bit uint32) bool {
	slot, mask := locate(bit)

	var buf [8]uint32
	c := newCursor(b.words)
	for c.advance() {
		if c.slot > slot {
			return false
		}
		if c.slot < slot {
			continue
		}
		if c.lit&mask == 0 {
			return false
		}
		if lit := c.lit &^ mask; lit != 0 {
			b.splice(c.start, c.pos, appendChunk(buf[:0], slot-c.base, lit))
			return true
		}
		// The slot becomes empty: fold its gap into the next occupied slot.
		start, base := c.start, c.base
		if c.advance() {
			b.splice(start, c.pos, appendChunk(buf[:0], c.slot-base, c.lit))
		} else {
			b.words = b.words[:start]
		}
		return true
	}
	return false
}
