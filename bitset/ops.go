package bitset

type mergeOp uint8

const (
	mergeAnd mergeOp = iota
	mergeOr
	mergeXor
	mergeAndNot
)

// And returns the positions set in both a and b.
func And(a, b *Bitset) *Bitset { return merge(a, b, mergeAnd) }

// Or returns the positions set in a or b.
func Or(a, b *Bitset) *Bitset { return merge(a, b, mergeOr) }

// Xor returns the positions set in exactly one of a and b.
func Xor(a, b *Bitset) *Bitset { return merge(a, b, mergeXor) }

// AndNot returns the positions set in a but not in b.
func AndNot(a, b *Bitset) *Bitset { return merge(a, b, mergeAndNot) }

// merge joins the occupied slots of both encodings. The result uses a's controller.
func merge(a, b *Bitset, op mergeOp) *Bitset {
	out := &Bitset{ctrl: a.ctrl}
	e := encoder{b: out}

	// Left-only and right-only slots survive these ops unchanged.
	keepA := op != mergeAnd
	keepB := op == mergeOr || op == mergeXor

	ca, cb := newCursor(a.words), newCursor(b.words)
	okA, okB := ca.advance(), cb.advance()
	for okA && okB {
		switch {
		case ca.slot < cb.slot:
			if keepA {
				e.emit(ca.slot, ca.lit)
			}
			okA = ca.advance()
		case ca.slot > cb.slot:
			if keepB {
				e.emit(cb.slot, cb.lit)
			}
			okB = cb.advance()
		default:
			var lit uint32
			switch op {
			case mergeAnd:
				lit = ca.lit & cb.lit
			case mergeOr:
				lit = ca.lit | cb.lit
			case mergeXor:
				lit = ca.lit ^ cb.lit
			case mergeAndNot:
				lit = ca.lit &^ cb.lit
			}
			e.emit(ca.slot, lit)
			okA, okB = ca.advance(), cb.advance()
		}
	}
	for ; okA && keepA; okA = ca.advance() {
		e.emit(ca.slot, ca.lit)
	}
	for ; okB && keepB; okB = cb.advance() {
		e.emit(cb.slot, cb.lit)
	}
	return out
}
