// Package operation composes vectors into a tree of boolean operators and
// evaluates it to a single vector.
//
// Steps are folded left to right. Each maximal run of AND and AND-NOT steps
// is reordered so that the operand with the smallest estimated cardinality is
// intersected first; once the accumulator becomes empty the rest of the run is
// skipped without evaluating, or resolving, its operands. OR and XOR steps keep
// their declared order.
//
// Vectors are combined record by record: records with the same offset are
// joined with the step's operator, an offset missing on one side is the empty
// set, and records that end up empty are omitted from the result. Repeated
// offsets within one operand are OR-ed together first.
//
// An Operation is not safe for concurrent use.
package operation

import (
	"github.com/hupe1980/plwah/vector"
)

// Operation is an ordered list of steps.
type Operation struct {
	steps []Step
	opts  Options
}

// New returns an empty operation.
func New(optFns ...func(o *Options)) *Operation {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Estimator == nil {
		opts.Estimator = defaultOptions().Estimator
	}
	return &Operation{opts: opts}
}

// Add appends a borrowed vector. The caller keeps ownership of v.
func (o *Operation) Add(v *vector.Vector, op Op) error {
	if v == nil {
		return ErrNilOperand
	}
	return o.add(op, &VectorOperand{Vector: v})
}

// AddOwned appends a vector that is released together with the operation.
func (o *Operation) AddOwned(v *vector.Vector, op Op) error {
	if v == nil {
		return ErrNilOperand
	}
	return o.add(op, &VectorOperand{Vector: v, Owned: true})
}

// AddNested appends a sub-operation.
func (o *Operation) AddNested(sub *Operation, op Op) error {
	if sub == nil {
		return ErrNilOperand
	}
	if sub == o || sub.reaches(o) {
		return ErrCycle
	}
	return o.add(op, &NestedOperand{Operation: sub})
}

// AddData appends a lazy step identified by token.
func (o *Operation) AddData(token any, op Op) error {
	return o.add(op, &LazyOperand{Token: token})
}

func (o *Operation) add(op Op, operand Operand) error {
	if !op.valid() {
		return ErrInvalidOp
	}
	o.steps = append(o.steps, Step{Op: op, Operand: operand})
	return nil
}

// Len returns the number of steps.
func (o *Operation) Len() int {
	return len(o.steps)
}

// Steps returns the steps. The slice aliases the operation.
func (o *Operation) Steps() []Step {
	return o.steps
}

// Bounds returns the lowest and highest record offsets over every concrete
// vector in the tree, including resolved lazy steps. ok is false when no
// concrete vector holds a record.
func (o *Operation) Bounds() (lo, hi uint32, ok bool) {
	o.walk(func(_ *Step, v *vector.Vector) {
		vlo, vhi, vok := v.Bounds()
		if !vok {
			return
		}
		if !ok || vlo < lo {
			lo = vlo
		}
		if !ok || vhi > hi {
			hi = vhi
		}
		ok = true
	})
	return lo, hi, ok
}

// Release drops the steps and releases operands added with AddOwned.
// Borrowed vectors, nested operations and lazy tokens are left to the caller.
func (o *Operation) Release() {
	for _, s := range o.steps {
		if vo, ok := s.Operand.(*VectorOperand); ok && vo.Owned {
			vo.Vector.Release()
		}
	}
	o.steps = nil
}

// ReleaseOperands releases every vector reachable from the tree, borrowed or
// owned, including nested operations and resolved lazy steps, then drops the
// steps. Calling it transfers ownership of all operands to the operation.
func (o *Operation) ReleaseOperands() {
	for _, s := range o.steps {
		switch operand := s.Operand.(type) {
		case *VectorOperand:
			operand.Vector.Release()
		case *NestedOperand:
			operand.Operation.ReleaseOperands()
		case *LazyOperand:
			if operand.Resolved != nil {
				operand.Resolved.Release()
				operand.Resolved = nil
			}
		}
	}
	o.steps = nil
}

// ReleaseData passes the token of every lazy step in the tree to fn once.
func (o *Operation) ReleaseData(fn func(token any)) {
	for _, lo := range o.lazy() {
		if lo.Token != nil {
			fn(lo.Token)
			lo.Token = nil
		}
	}
}

// walk visits every concrete vector of the tree.
func (o *Operation) walk(fn func(*Step, *vector.Vector)) {
	for i := range o.steps {
		s := &o.steps[i]
		switch operand := s.Operand.(type) {
		case *VectorOperand:
			fn(s, operand.Vector)
		case *NestedOperand:
			operand.Operation.walk(fn)
		case *LazyOperand:
			if operand.Resolved != nil {
				fn(s, operand.Resolved)
			}
		}
	}
}

// lazy returns every distinct lazy operand of the tree in declaration order.
func (o *Operation) lazy() []*LazyOperand {
	var (
		out  []*LazyOperand
		seen = make(map[*LazyOperand]struct{})
	)
	var visit func(*Operation)
	visit = func(op *Operation) {
		for _, s := range op.steps {
			switch operand := s.Operand.(type) {
			case *NestedOperand:
				visit(operand.Operation)
			case *LazyOperand:
				if _, ok := seen[operand]; !ok {
					seen[operand] = struct{}{}
					out = append(out, operand)
				}
			}
		}
	}
	visit(o)
	return out
}

func (o *Operation) reaches(target *Operation) bool {
	for _, s := range o.steps {
		if n, ok := s.Operand.(*NestedOperand); ok {
			if n.Operation == target || n.Operation.reaches(target) {
				return true
			}
		}
	}
	return false
}
