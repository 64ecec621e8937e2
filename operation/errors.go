package operation

import "errors"

var (
	// ErrUnresolved is returned by Exec when a lazy step has no vector and no
	// resolver is configured.
	ErrUnresolved = errors.New("operation: unresolved lazy operand")

	// ErrInvalidOp is returned when adding a step with an unknown operator.
	ErrInvalidOp = errors.New("operation: invalid operator")

	// ErrCycle is returned when nesting an operation inside itself.
	ErrCycle = errors.New("operation: nested operation forms a cycle")

	// ErrNilOperand is returned when adding a nil vector or operation.
	ErrNilOperand = errors.New("operation: nil operand")
)
