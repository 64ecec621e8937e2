package resolver

import (
	"context"
	"sync"

	"github.com/bluele/gcache"

	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/vector"
)

const defaultCacheSize = 4096

// CachingResolver memoizes another resolver in an LRU keyed by token.
// Tokens must be comparable.
//
// Callers receive a copy of the cached vector, so an operation may release
// its resolved operands without affecting the cache. Evicted vectors are
// released.
type CachingResolver struct {
	next operation.Resolver

	// mu guards every cache access. Eviction releases vectors, so a copy
	// must never overlap a Set, Remove or Purge.
	mu    sync.Mutex
	cache gcache.Cache
}

// NewCachingResolver wraps next with an LRU holding up to size vectors.
func NewCachingResolver(next operation.Resolver, size int) *CachingResolver {
	if size <= 0 {
		size = defaultCacheSize
	}
	release := func(_, value any) {
		value.(*vector.Vector).Release()
	}
	return &CachingResolver{
		next: next,
		cache: gcache.New(size).
			LRU().
			EvictedFunc(release).
			PurgeVisitorFunc(release).
			Build(),
	}
}

// Resolve implements operation.Resolver.
func (c *CachingResolver) Resolve(ctx context.Context, token any) (*vector.Vector, error) {
	if v, ok := c.lookup(token); ok {
		return v, nil
	}

	v, err := c.next(ctx, token)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = vector.New()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have loaded the same token meanwhile.
	if cached, err := c.cache.GetIFPresent(token); err == nil {
		v.Release()
		return cached.(*vector.Vector).Copy(), nil
	}
	if err := c.cache.Set(token, v); err != nil {
		return nil, err
	}
	return v.Copy(), nil
}

func (c *CachingResolver) lookup(token any) (*vector.Vector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, err := c.cache.Get(token)
	if err != nil {
		return nil, false
	}
	return cached.(*vector.Vector).Copy(), true
}

// Invalidate drops token from the cache.
func (c *CachingResolver) Invalidate(token any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Remove(token)
}

// Purge empties the cache.
func (c *CachingResolver) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

// Len returns the number of cached vectors.
func (c *CachingResolver) Len() int {
	return c.cache.Len(false)
}

// HitRate returns the fraction of lookups served from the cache.
func (c *CachingResolver) HitRate() float64 {
	return c.cache.HitRate()
}
