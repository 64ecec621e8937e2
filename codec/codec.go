// Package codec frames encoded vectors for storage.
//
// A frame is a fixed header followed by the, possibly compressed, vector
// buffer:
//
//	magic   [4]byte  "PLWV"
//	version uint8
//	codec   uint8    ID of the compression codec
//	_       [2]byte
//	rawLen  uint32   length of the uncompressed buffer
//	sum     uint64   xxh3 of the uncompressed buffer
//	payload []byte
//
// All integers are little-endian. Changing the frame layout is a breaking
// change: bump version and keep decoding the old one.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

const (
	magic      = "PLWV"
	version    = 1
	headerSize = 20
)

var (
	// ErrBadMagic is returned when data is not a frame.
	ErrBadMagic = errors.New("codec: bad magic")

	// ErrUnsupportedVersion is returned for frames written by a newer format.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")

	// ErrUnknownCodec is returned for an unregistered codec ID.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrChecksum is returned when the decoded buffer does not match its checksum.
	ErrChecksum = errors.New("codec: checksum mismatch")

	// ErrCorrupt is returned when the payload cannot be decompressed.
	ErrCorrupt = errors.New("codec: corrupt payload")
)

// ID identifies a codec inside a frame.
type ID uint8

const (
	IDNone ID = iota
	IDZstd
	IDLZ4
)

// Codec compresses frame payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Compress appends the compressed src to dst.
	Compress(dst, src []byte) ([]byte, error)
	// Decompress appends the decompressed src, rawLen bytes long, to dst.
	// rawLen comes from the frame header and is not trusted: implementations
	// must not allocate for it before checking it against src.
	Decompress(dst, src []byte, rawLen int) ([]byte, error)
	ID() ID
	Name() string
}

// Default is used by Encode when no codec is given.
var Default Codec = Zstd{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "none":
		return None{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// ByID returns the built-in codec stored in a frame header.
func ByID(id ID) (Codec, bool) {
	switch id {
	case IDNone:
		return None{}, true
	case IDZstd:
		return Zstd{}, true
	case IDLZ4:
		return LZ4{}, true
	default:
		return nil, false
	}
}

// Encode frames raw with c. A nil c uses Default.
func Encode(raw []byte, c Codec) ([]byte, error) {
	if c == nil {
		c = Default
	}
	if uint64(len(raw)) > 1<<32-1 {
		return nil, fmt.Errorf("codec: buffer of %d bytes exceeds frame limit", len(raw))
	}

	frame := make([]byte, headerSize, headerSize+len(raw)/2)
	copy(frame, magic)
	frame[4] = version
	frame[5] = byte(c.ID())
	binary.LittleEndian.PutUint32(frame[8:], uint32(len(raw)))
	binary.LittleEndian.PutUint64(frame[12:], xxh3.Hash(raw))

	frame, err := c.Compress(frame, raw)
	if err != nil {
		return nil, fmt.Errorf("codec: %s compress: %w", c.Name(), err)
	}
	return frame, nil
}

// Decode verifies a frame and returns the raw buffer.
func Decode(frame []byte) ([]byte, error) {
	return decode(frame, nil)
}

// decode charges the raw buffer to rc while it is being produced. The
// default out-of-memory hook panics; DecodeVector recovers it.
func decode(frame []byte, rc *resource.Controller) ([]byte, error) {
	if len(frame) < headerSize || string(frame[:4]) != magic {
		return nil, ErrBadMagic
	}
	if frame[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, frame[4])
	}
	c, ok := ByID(ID(frame[5]))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, frame[5])
	}
	rawLen := int(binary.LittleEndian.Uint32(frame[8:]))
	sum := binary.LittleEndian.Uint64(frame[12:])

	rc.Grow(int64(rawLen))
	defer rc.Shrink(int64(rawLen))

	raw, err := c.Decompress(nil, frame[headerSize:], rawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.Name(), err)
	}
	if len(raw) != rawLen {
		return nil, fmt.Errorf("%w: %s: got %d bytes, want %d", ErrCorrupt, c.Name(), len(raw), rawLen)
	}
	if xxh3.Hash(raw) != sum {
		return nil, ErrChecksum
	}
	return raw, nil
}

// EncodeVector frames the buffer of v.
func EncodeVector(v *vector.Vector, c Codec) ([]byte, error) {
	return Encode(v.Bytes(), c)
}

// DecodeVector verifies a frame and imports the vector it holds. When opts
// carry a controller, the decoded buffer is charged to it and exceeding the
// budget is reported as an error wrapping resource.ErrOutOfMemory.
func DecodeVector(frame []byte, opts ...vector.Option) (v *vector.Vector, err error) {
	defer resource.RecoverOutOfMemory(&err)

	raw, err := decode(frame, vector.ControllerOf(opts...))
	if err != nil {
		return nil, err
	}
	return vector.Import(raw, opts...)
}
