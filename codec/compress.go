package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// None stores payloads uncompressed.
type None struct{}

func (None) Compress(dst, src []byte) ([]byte, error) { return append(dst, src...), nil }

func (None) Decompress(dst, src []byte, rawLen int) ([]byte, error) {
	if len(src) != rawLen {
		return nil, fmt.Errorf("none: payload is %d bytes, want %d", len(src), rawLen)
	}
	return append(dst, src...), nil
}

func (None) ID() ID { return IDNone }

func (None) Name() string { return "none" }

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
	return dec
}

// Zstd compresses payloads with zstd. It is the default: fill-heavy vectors
// shrink well and decoding stays fast.
type Zstd struct{}

func (Zstd) Compress(dst, src []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(src, dst), nil
}

// Decompress streams the payload so the output only grows with data the
// frame actually holds, and stops one byte past rawLen.
func (Zstd) Decompress(dst, src []byte, rawLen int) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(src); err == nil && h.HasFCS && h.FrameContentSize != uint64(rawLen) {
		return nil, fmt.Errorf("zstd: frame content size %d, want %d", h.FrameContentSize, rawLen)
	}

	dec := getZstdDecoder()
	defer zstdDecoderPool.Put(dec)
	if err := dec.Reset(bytes.NewReader(src)); err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(dst)
	if _, err := buf.ReadFrom(io.LimitReader(dec, int64(rawLen)+1)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Zstd) ID() ID { return IDZstd }

func (Zstd) Name() string { return "zstd" }

// LZ4 compresses payloads with LZ4 block compression.
//
// The payload starts with a flag byte: 1 for an LZ4 block, 0 when the input
// was incompressible and is stored as is.
type LZ4 struct{}

func (LZ4) Compress(dst, src []byte) ([]byte, error) {
	start := len(dst)
	bound := lz4.CompressBlockBound(len(src))
	dst = append(dst, make([]byte, 1+bound)...)

	n, err := lz4.CompressBlock(src, dst[start+1:], nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(src) {
		dst = dst[:start]
		dst = append(dst, 0)
		return append(dst, src...), nil
	}
	dst[start] = 1
	return dst[:start+1+n], nil
}

// lz4MaxExpansion bounds the raw bytes one compressed byte can expand to.
const lz4MaxExpansion = 255

func (LZ4) Decompress(dst, src []byte, rawLen int) ([]byte, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("lz4: missing block flag")
	}
	if src[0] == 0 {
		if len(src)-1 != rawLen {
			return nil, fmt.Errorf("lz4: stored payload is %d bytes, want %d", len(src)-1, rawLen)
		}
		return append(dst, src[1:]...), nil
	}
	if rawLen > lz4MaxExpansion*len(src) {
		return nil, fmt.Errorf("lz4: %d byte block cannot expand to %d bytes", len(src)-1, rawLen)
	}
	start := len(dst)
	dst = append(dst, make([]byte, rawLen)...)
	n, err := lz4.UncompressBlock(src[1:], dst[start:])
	if err != nil {
		return nil, err
	}
	return dst[:start+n], nil
}

func (LZ4) ID() ID { return IDLZ4 }

func (LZ4) Name() string { return "lz4" }
