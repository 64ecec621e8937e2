package plwah

import (
	"errors"
	"fmt"

	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/blobstore"
	"github.com/hupe1980/plwah/codec"
	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

var (
	// ErrMalformed is returned for undecodable bitsets, vectors and frames.
	ErrMalformed = errors.New("malformed data")

	// ErrUnresolved is returned when a lazy operand has no vector and no
	// resolver is configured.
	ErrUnresolved = errors.New("unresolved operand")

	// ErrOutOfMemory is returned when a buffer could not grow within the
	// memory budget.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrInvalidArgument is returned for misuse such as out-of-order offsets
	// or an unknown operator.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a stored vector does not exist.
	ErrNotFound = errors.New("not found")
)

// translateError maps package errors onto the root sentinels. The wrapped
// error stays reachable through errors.Is and errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, resource.ErrOutOfMemory):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case errors.Is(err, operation.ErrUnresolved):
		return fmt.Errorf("%w: %w", ErrUnresolved, err)
	case errors.Is(err, blobstore.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Decoding failures.
	if errors.Is(err, bitset.ErrMalformed) ||
		errors.Is(err, vector.ErrMalformed) ||
		errors.Is(err, codec.ErrBadMagic) ||
		errors.Is(err, codec.ErrUnsupportedVersion) ||
		errors.Is(err, codec.ErrUnknownCodec) ||
		errors.Is(err, codec.ErrChecksum) ||
		errors.Is(err, codec.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	// Argument normalization.
	if errors.Is(err, vector.ErrOffsetOrder) ||
		errors.Is(err, vector.ErrValueTooLarge) ||
		errors.Is(err, operation.ErrInvalidOp) ||
		errors.Is(err, operation.ErrCycle) ||
		errors.Is(err, operation.ErrNilOperand) ||
		errors.Is(err, blobstore.ErrInvalidName) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
