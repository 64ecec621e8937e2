package operation

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/plwah/vector"
)

// Stats describes one evaluation.
type Stats struct {
	// Evaluated counts operands that were materialized.
	Evaluated int
	// Resolved counts lazy steps resolved during evaluation.
	Resolved int
	// Skipped counts operands never evaluated because an intersection was already empty.
	Skipped int
	// ShortCircuits counts intersection runs cut short.
	ShortCircuits int
	// ResolveTime is the time spent in the resolver during evaluation.
	ResolveTime time.Duration
}

// Exec evaluates the tree into a new vector owned by the caller.
// The operation itself is not consumed and may be evaluated again.
func (o *Operation) Exec(ctx context.Context) (*vector.Vector, error) {
	v, _, err := o.ExecStats(ctx)
	return v, err
}

// ExecStats is Exec that also reports what the evaluation did.
func (o *Operation) ExecStats(ctx context.Context) (*vector.Vector, Stats, error) {
	ev := &evaluator{opts: o.opts}
	t, err := ev.eval(ctx, o)
	if err != nil {
		return nil, ev.stats, err
	}
	v, err := store(t, o.opts.Controller)
	return v, ev.stats, err
}

type evaluator struct {
	opts  Options
	stats Stats
}

func (ev *evaluator) eval(ctx context.Context, o *Operation) (table, error) {
	steps := o.steps
	if len(steps) == 0 {
		return nil, nil
	}

	var (
		acc table
		pos int
		err error
	)
	if end := runEnd(steps, 1); end > 1 {
		// The seed commutes with a leading intersection run.
		seed := Step{Op: OpAnd, Operand: steps[0].Operand}
		acc, err = ev.intersect(ctx, nil, append([]Step{seed}, steps[1:end]...), true)
		pos = end
	} else {
		acc, err = ev.value(ctx, steps[0].Operand)
		pos = 1
	}
	if err != nil {
		return nil, err
	}

	for pos < len(steps) {
		if err := ctx.Err(); err != nil {
			acc.release()
			return nil, err
		}
		if end := runEnd(steps, pos); end > pos {
			acc, err = ev.intersect(ctx, acc, steps[pos:end], false)
			pos = end
		} else {
			var t table
			t, err = ev.value(ctx, steps[pos].Operand)
			if err == nil {
				acc = combine(acc, t, steps[pos].Op)
			}
			pos++
		}
		if err != nil {
			acc.release()
			return nil, err
		}
	}
	return acc, nil
}

// runEnd returns the end of the AND/AND-NOT run starting at from.
func runEnd(steps []Step, from int) int {
	end := from
	for end < len(steps) && steps[end].Op.intersecting() {
		end++
	}
	return end
}

// intersect applies a run of AND and AND-NOT steps, smallest operands first.
// With seeded set, acc is ignored and the first AND operand becomes the accumulator.
func (ev *evaluator) intersect(ctx context.Context, acc table, run []Step, seeded bool) (table, error) {
	type ranked struct {
		step Step
		est  uint64
	}
	var ands, nots []ranked
	for _, s := range run {
		r := ranked{step: s, est: ev.estimate(s.Operand)}
		if s.Op == OpAnd {
			ands = append(ands, r)
		} else {
			nots = append(nots, r)
		}
	}
	byEstimate := func(a, b ranked) int { return cmp.Compare(a.est, b.est) }
	slices.SortStableFunc(ands, byEstimate)
	slices.SortStableFunc(nots, byEstimate)
	ordered := append(ands, nots...)

	for i, r := range ordered {
		if i > 0 || !seeded {
			if len(acc) == 0 {
				ev.stats.Skipped += len(ordered) - i
				ev.stats.ShortCircuits++
				return acc, nil
			}
			if err := ctx.Err(); err != nil {
				acc.release()
				return nil, err
			}
			if r.step.Op == OpAnd && ev.disjoint(acc, r.step.Operand) {
				acc.release()
				ev.stats.Skipped += len(ordered) - i
				ev.stats.ShortCircuits++
				return nil, nil
			}
		}

		t, err := ev.value(ctx, r.step.Operand)
		if err != nil {
			acc.release()
			return nil, err
		}
		if i == 0 && seeded {
			acc = t
			continue
		}
		acc = combine(acc, t, r.step.Op)
	}
	return acc, nil
}

// disjoint reports whether operand is known, without evaluating it, to share
// no offset with acc.
func (ev *evaluator) disjoint(acc table, operand Operand) bool {
	var v *vector.Vector
	switch operand := operand.(type) {
	case *VectorOperand:
		v = operand.Vector
	case *LazyOperand:
		v = operand.Resolved
	}
	if v == nil {
		return false
	}
	lo, hi, ok := v.Bounds()
	if !ok {
		return true
	}
	alo, ahi, _ := acc.bounds()
	return hi < alo || lo > ahi
}

// value materializes an operand.
func (ev *evaluator) value(ctx context.Context, operand Operand) (table, error) {
	ev.stats.Evaluated++
	switch operand := operand.(type) {
	case *VectorOperand:
		return load(operand.Vector, ev.opts.Controller), nil
	case *NestedOperand:
		return ev.eval(ctx, operand.Operation)
	case *LazyOperand:
		if operand.Resolved == nil {
			if ev.opts.Resolver == nil {
				return nil, ErrUnresolved
			}
			start := time.Now()
			err := resolve(ctx, ev.opts.Resolver, operand)
			ev.stats.ResolveTime += time.Since(start)
			if err != nil {
				return nil, err
			}
			ev.stats.Resolved++
		}
		return load(operand.Resolved, ev.opts.Controller), nil
	}
	return nil, nil
}

// estimate returns the estimated cardinality of an operand without
// evaluating it. Unresolved lazy steps are unknown and sort last.
func (ev *evaluator) estimate(operand Operand) uint64 {
	switch operand := operand.(type) {
	case *VectorOperand:
		return ev.opts.Estimator.EstimateVector(operand.Vector)
	case *NestedOperand:
		return ev.estimateTree(operand.Operation)
	case *LazyOperand:
		if operand.Resolved != nil {
			return ev.opts.Estimator.EstimateVector(operand.Resolved)
		}
	}
	return math.MaxUint64
}

// estimateTree folds operand estimates with the bound each operator implies
// on the result size.
func (ev *evaluator) estimateTree(o *Operation) uint64 {
	if len(o.steps) == 0 {
		return 0
	}
	acc := ev.estimate(o.steps[0].Operand)
	for _, s := range o.steps[1:] {
		switch s.Op {
		case OpOr, OpXor:
			acc = saturatingAdd(acc, ev.estimate(s.Operand))
		case OpAnd:
			acc = min(acc, ev.estimate(s.Operand))
		}
	}
	return acc
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
