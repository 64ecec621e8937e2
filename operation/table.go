package operation

import (
	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

type entry struct {
	offset uint32
	b      *bitset.Bitset
}

// table is an intermediate result: non-empty bitsets by strictly increasing offset.
// Table operations consume their inputs.
type table []entry

func (t table) bounds() (lo, hi uint32, ok bool) {
	if len(t) == 0 {
		return 0, 0, false
	}
	return t[0].offset, t[len(t)-1].offset, true
}

func (t table) release() {
	for _, e := range t {
		e.b.Release()
	}
}

// load decodes v, OR-ing records that share an offset and dropping empty ones.
func load(v *vector.Vector, rc *resource.Controller) table {
	var t table
	for offset, data := range v.All() {
		if len(data) == 0 {
			continue
		}
		b := bitset.View(data, bitset.WithController(rc))
		if n := len(t); n > 0 && t[n-1].offset == offset {
			merged := bitset.Or(t[n-1].b, b)
			t[n-1].b.Release()
			b.Release()
			t[n-1].b = merged
			continue
		}
		t = append(t, entry{offset: offset, b: b})
	}
	return t
}

// store encodes t into a new vector and releases it.
func store(t table, rc *resource.Controller) (*vector.Vector, error) {
	defer t.release()

	v := vector.New(vector.WithController(rc))
	for _, e := range t {
		if err := v.Push(e.b, e.offset); err != nil {
			v.Release()
			return nil, err
		}
	}
	return v, nil
}

// combine joins a and b record by record.
func combine(a, b table, op Op) table {
	keepA := op != OpAnd
	keepB := op == OpOr || op == OpXor

	out := make(table, 0, max(len(a), len(b)))
	take := func(e entry, keep bool) {
		if keep {
			out = append(out, e)
		} else {
			e.b.Release()
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].offset < b[j].offset:
			take(a[i], keepA)
			i++
		case a[i].offset > b[j].offset:
			take(b[j], keepB)
			j++
		default:
			var r *bitset.Bitset
			switch op {
			case OpAnd:
				r = bitset.And(a[i].b, b[j].b)
			case OpOr:
				r = bitset.Or(a[i].b, b[j].b)
			case OpXor:
				r = bitset.Xor(a[i].b, b[j].b)
			case OpAndNot:
				r = bitset.AndNot(a[i].b, b[j].b)
			}
			a[i].b.Release()
			b[j].b.Release()
			take(entry{offset: a[i].offset, b: r}, !r.IsEmpty())
			i++
			j++
		}
	}
	for ; i < len(a); i++ {
		take(a[i], keepA)
	}
	for ; j < len(b); j++ {
		take(b[j], keepB)
	}
	return out
}
