package operation

import (
	"fmt"

	"github.com/hupe1980/plwah/vector"
)

// Op joins a step to the result accumulated from the steps before it.
type Op uint8

const (
	OpOr Op = iota
	OpAnd
	OpXor
	OpAndNot
)

func (op Op) String() string {
	switch op {
	case OpOr:
		return "OR"
	case OpAnd:
		return "AND"
	case OpXor:
		return "XOR"
	case OpAndNot:
		return "ANDNOT"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}

func (op Op) valid() bool { return op <= OpAndNot }

// intersecting reports whether op can only remove positions from the accumulator.
func (op Op) intersecting() bool { return op == OpAnd || op == OpAndNot }

// Operand is the value of a step. It is one of *VectorOperand, *NestedOperand
// or *LazyOperand.
type Operand interface {
	operand()
}

// VectorOperand is a concrete vector. Owned operands are released together
// with the operation; borrowed ones only by ReleaseOperands.
type VectorOperand struct {
	Vector *vector.Vector
	Owned  bool
}

// NestedOperand is a sub-operation evaluated to a vector before it is combined.
type NestedOperand struct {
	Operation *Operation
}

// LazyOperand is an opaque token resolved to a vector on demand.
type LazyOperand struct {
	Token    any
	Resolved *vector.Vector
}

func (*VectorOperand) operand() {}
func (*NestedOperand) operand() {}
func (*LazyOperand) operand()   {}

// Step is one operand of an operation and the operator joining it.
// The operator of the first step is ignored.
type Step struct {
	Op      Op
	Operand Operand
}
