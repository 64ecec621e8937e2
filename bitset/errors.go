package bitset

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every error returned for an invalid word buffer.
var ErrMalformed = errors.New("bitset: malformed encoding")

// DecodeError reports where a word buffer stopped being a valid canonical encoding.
type DecodeError struct {
	Word   int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bitset: malformed encoding at word %d: %s", e.Word, e.Reason)
}

func (e *DecodeError) Unwrap() error { return ErrMalformed }
