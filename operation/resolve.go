package operation

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/plwah/vector"
)

// ResolveData resolves every lazy step of the tree that has no vector yet,
// in declaration order, and returns how many it resolved. Steps resolved by
// an earlier call are skipped, so a failed call can be retried.
func (o *Operation) ResolveData(ctx context.Context, fn Resolver) (int, error) {
	n := 0
	for _, lo := range o.lazy() {
		if lo.Resolved != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := resolve(ctx, fn, lo); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ResolveDataConcurrent is ResolveData with up to Options.Concurrency resolver
// calls in flight. The first error cancels the context passed to the others.
func (o *Operation) ResolveDataConcurrent(ctx context.Context, fn Resolver) (int, error) {
	var pending []*LazyOperand
	for _, lo := range o.lazy() {
		if lo.Resolved == nil {
			pending = append(pending, lo)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	limit := o.opts.Concurrency
	if limit <= 0 {
		limit = o.opts.Controller.Workers()
	}

	var n atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, lo := range pending {
		g.Go(func() error {
			if err := resolve(gctx, fn, lo); err != nil {
				return err
			}
			n.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(n.Load()), err
}

func resolve(ctx context.Context, fn Resolver, lo *LazyOperand) error {
	v, err := fn(ctx, lo.Token)
	if err != nil {
		return fmt.Errorf("resolve %v: %w", lo.Token, err)
	}
	if v == nil {
		v = vector.New()
	}
	lo.Resolved = v
	return nil
}
