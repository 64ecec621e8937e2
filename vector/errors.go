package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrOffsetOrder is returned when a record would precede the last one.
	ErrOffsetOrder = errors.New("vector: offsets must be non-decreasing")

	// ErrValueTooLarge is returned when an offset delta or a record length
	// does not fit a header, or an offset overflows uint32.
	ErrValueTooLarge = errors.New("vector: value exceeds header range")

	// ErrMalformed is wrapped by every error returned for an invalid buffer.
	ErrMalformed = errors.New("vector: malformed buffer")
)

// DecodeError reports the record at which an imported buffer became invalid.
type DecodeError struct {
	Offset int // byte position of the record
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vector: malformed record at byte %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("vector: malformed record at byte %d: %s", e.Offset, e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}
