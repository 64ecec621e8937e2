package resolver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/blobstore"
	"github.com/hupe1980/plwah/codec"
	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

func posting(t *testing.T, offset uint32, bits ...uint32) *vector.Vector {
	t.Helper()
	v := vector.New()
	require.NoError(t, v.Push(bitset.FromBits(bits), offset))
	return v
}

func seed(t *testing.T) blobstore.BlobStore {
	t.Helper()
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, PutVector(ctx, store, "terms/go", posting(t, 0, 1, 2, 3, 100), nil))
	require.NoError(t, PutVector(ctx, store, "terms/rust", posting(t, 0, 2, 100, 200), codec.LZ4{}))
	return store
}

type term string

func (t term) String() string { return "terms/" + string(t) }

func TestBlobResolver(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	resolve := BlobResolver(store)

	v, err := resolve(ctx, "terms/go")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), v.Merge().Count())

	v, err = resolve(ctx, term("rust"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Merge().Count())

	_, err = resolve(ctx, 42)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = resolve(ctx, "terms/zig")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	lenient := BlobResolver(store, func(o *Options) { o.MissingAsEmpty = true })
	v, err = lenient(ctx, "terms/zig")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestBlobResolver_Prefix(t *testing.T) {
	store := seed(t)
	resolve := BlobResolver(store, func(o *Options) {
		o.Prefix = "terms/"
		o.Name = func(token any) (string, error) {
			id, ok := token.(int)
			if !ok {
				return "", ErrInvalidToken
			}
			return []string{"go", "rust"}[id], nil
		}
	})

	v, err := resolve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Merge().Count())
}

func TestBlobResolver_Controller(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	resolve := BlobResolver(seed(t), func(o *Options) { o.Controller = rc })

	v, err := resolve(context.Background(), "terms/go")
	require.NoError(t, err)
	assert.Same(t, rc, v.Controller())
	assert.Positive(t, rc.MemoryUsage())

	v.Release()
	assert.Zero(t, rc.MemoryUsage())
}

func TestBlobResolver_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad", []byte("not a frame")))

	_, err := BlobResolver(store)(ctx, "bad")
	assert.ErrorIs(t, err, codec.ErrBadMagic)
}

func TestGetVector(t *testing.T) {
	ctx := context.Background()
	store := seed(t)

	v, err := GetVector(ctx, store, "terms/go")
	require.NoError(t, err)
	assert.Equal(t, posting(t, 0, 1, 2, 3, 100).Bytes(), v.Bytes())

	_, err = GetVector(ctx, store, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCachingResolver(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	next := BlobResolver(seed(t))
	cache := NewCachingResolver(func(ctx context.Context, token any) (*vector.Vector, error) {
		calls.Add(1)
		return next(ctx, token)
	}, 1)

	a, err := cache.Resolve(ctx, "terms/go")
	require.NoError(t, err)
	b, err := cache.Resolve(ctx, "terms/go")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Equal(t, 1, cache.Len())

	// Releasing a returned vector leaves the cached one intact.
	a.Release()
	c, err := cache.Resolve(ctx, "terms/go")
	require.NoError(t, err)
	assert.Equal(t, b.Bytes(), c.Bytes())

	// Capacity one: a second token evicts the first.
	_, err = cache.Resolve(ctx, "terms/rust")
	require.NoError(t, err)
	_, err = cache.Resolve(ctx, "terms/go")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	assert.True(t, cache.Invalidate("terms/go"))
	assert.Zero(t, cache.Len())

	_, err = cache.Resolve(ctx, "terms/rust")
	require.NoError(t, err)
	cache.Purge()
	assert.Zero(t, cache.Len())
}

func TestCachingResolver_ConcurrentEviction(t *testing.T) {
	ctx := context.Background()
	want := map[string]uint64{"a": 2000, "b": 1000}
	next := func(_ context.Context, token any) (*vector.Vector, error) {
		n := want[token.(string)]
		bits := make([]uint32, n)
		for i := range bits {
			bits[i] = uint32(i) * 3
		}
		v := vector.New()
		if err := v.Push(bitset.FromBits(bits), 7); err != nil {
			return nil, err
		}
		return v, nil
	}
	// Capacity one: every other lookup evicts and releases the cached vector.
	cache := NewCachingResolver(next, 1)

	var (
		wg  sync.WaitGroup
		bad atomic.Int32
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				token := "a"
				if (g+i)%2 == 1 {
					token = "b"
				}
				v, err := cache.Resolve(ctx, token)
				if err != nil {
					bad.Add(1)
					continue
				}
				if _, total := v.CountBits(); total != want[token] || v.Count() != 1 {
					bad.Add(1)
				}
				v.Release()
			}
		}(g)
	}
	wg.Wait()

	assert.Zero(t, bad.Load())
}

func TestCachingResolver_Errors(t *testing.T) {
	boom := errors.New("boom")
	cache := NewCachingResolver(func(context.Context, any) (*vector.Vector, error) {
		return nil, boom
	}, 0)

	_, err := cache.Resolve(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.Len())
}

func TestCachingResolver_Operation(t *testing.T) {
	ctx := context.Background()
	cache := NewCachingResolver(BlobResolver(seed(t)), 16)

	query := func() []uint32 {
		op := operation.New(func(o *operation.Options) { o.Resolver = cache.Resolve })
		require.NoError(t, op.AddData("terms/go", operation.OpOr))
		require.NoError(t, op.AddData("terms/rust", operation.OpAnd))

		v, err := op.Exec(ctx)
		require.NoError(t, err)
		op.ReleaseOperands()
		return bitset.NewIterator(v.Merge()).Offsets()
	}

	assert.Equal(t, []uint32{2, 100}, query())
	assert.Equal(t, []uint32{2, 100}, query())
	assert.Equal(t, 2, cache.Len())
}
