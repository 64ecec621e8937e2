package codec

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

func testVector(t testing.TB) *vector.Vector {
	t.Helper()
	v := vector.New()
	for offset := uint32(0); offset < 200; offset++ {
		bits := make([]uint32, 0, 64)
		for i := uint32(0); i < 64; i++ {
			bits = append(bits, i*(offset+1))
		}
		require.NoError(t, v.Push(bitset.FromBits(bits), offset))
	}
	return v
}

func TestRoundTrip(t *testing.T) {
	v := testVector(t)

	for _, c := range []Codec{None{}, Zstd{}, LZ4{}} {
		t.Run(c.Name(), func(t *testing.T) {
			frame, err := EncodeVector(v, c)
			require.NoError(t, err)

			got, err := DecodeVector(frame)
			require.NoError(t, err)
			assert.Equal(t, v.Bytes(), got.Bytes())

			byName, ok := ByName(c.Name())
			require.True(t, ok)
			assert.Equal(t, c.ID(), byName.ID())
		})
	}
}

func TestCompresses(t *testing.T) {
	v := testVector(t)

	zstdFrame, err := EncodeVector(v, Zstd{})
	require.NoError(t, err)
	assert.Less(t, len(zstdFrame), v.Len())

	defaultFrame, err := EncodeVector(v, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(IDZstd), defaultFrame[5])
}

func TestLZ4_Incompressible(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}

	frame, err := Encode(raw, LZ4{})
	require.NoError(t, err)
	assert.Equal(t, byte(0), frame[headerSize])

	got, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	frame, err = Encode(nil, LZ4{})
	require.NoError(t, err)
	got, err = Decode(frame)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_Errors(t *testing.T) {
	frame, err := Encode(bytes.Repeat([]byte("plwah"), 100), LZ4{})
	require.NoError(t, err)

	_, err = Decode([]byte("nope"))
	assert.ErrorIs(t, err, ErrBadMagic)

	bad := bytes.Clone(frame)
	bad[4] = 9
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	bad = bytes.Clone(frame)
	bad[5] = 42
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnknownCodec)

	bad = bytes.Clone(frame)
	bad[12] ^= 0xFF
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrChecksum)

	_, err = Decode(frame[:headerSize+3])
	assert.ErrorIs(t, err, ErrCorrupt)

	// A valid frame around an invalid vector.
	raw, err := Encode([]byte{0x00, 0x04, 0, 0, 0, 0}, None{})
	require.NoError(t, err)
	_, err = DecodeVector(raw)
	assert.ErrorIs(t, err, vector.ErrMalformed)
}

func TestDecode_InflatedRawLen(t *testing.T) {
	frames := map[string][]byte{}
	for _, c := range []Codec{None{}, Zstd{}, LZ4{}} {
		frame, err := Encode(bytes.Repeat([]byte("plwah"), 100), c)
		require.NoError(t, err)
		frames[c.Name()] = frame
	}
	stored, err := Encode([]byte{0x01, 0x02}, LZ4{})
	require.NoError(t, err)
	frames["lz4-stored"] = stored

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			bad := bytes.Clone(frame)
			binary.LittleEndian.PutUint32(bad[8:], 1<<30)

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err := Decode(bad)
			runtime.ReadMemStats(&after)

			assert.ErrorIs(t, err, ErrCorrupt)
			assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20))
		})
	}
}

func TestDecodeVector_Controller(t *testing.T) {
	v := testVector(t)
	frame, err := EncodeVector(v, Zstd{})
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 10})
	_, err = DecodeVector(frame, vector.WithController(rc))
	require.ErrorIs(t, err, resource.ErrOutOfMemory)
	assert.Zero(t, rc.MemoryUsage())

	rc = resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	got, err := DecodeVector(frame, vector.WithController(rc))
	require.NoError(t, err)
	assert.Equal(t, v.Bytes(), got.Bytes())
	// Only the imported vector stays charged.
	assert.Equal(t, int64(got.Cap()), rc.MemoryUsage())
}

func BenchmarkEncodeVector(b *testing.B) {
	v := testVector(b)

	for _, c := range []Codec{None{}, Zstd{}, LZ4{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(v.Len()))
			for i := 0; i < b.N; i++ {
				if _, err := EncodeVector(v, c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
