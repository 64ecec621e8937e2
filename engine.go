package plwah

import (
	"context"
	"time"

	"github.com/hupe1980/plwah/codec"
	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/resource"
	"github.com/hupe1980/plwah/vector"
)

// Engine builds and evaluates operations with shared resources, logging and
// metrics. It holds no per-operation state and is safe for concurrent use;
// each Operation it creates is not.
type Engine struct {
	opts options
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	return &Engine{opts: applyOptions(optFns)}
}

// Controller returns the resource controller, or nil.
func (e *Engine) Controller() *resource.Controller {
	return e.opts.controller
}

// NewVector returns an empty vector charged to the engine's controller.
func (e *Engine) NewVector() *vector.Vector {
	return vector.New(vector.WithController(e.opts.controller))
}

// NewOperation returns an empty operation configured with the engine's
// estimator, resolver and controller.
func (e *Engine) NewOperation() *operation.Operation {
	return operation.New(func(o *operation.Options) {
		o.Estimator = e.opts.estimator
		o.Resolver = e.opts.resolver
		o.Controller = e.opts.controller
		o.Concurrency = e.opts.concurrency
	})
}

// Import decodes a codec frame into a vector charged to the engine's
// controller.
func (e *Engine) Import(frame []byte) (v *vector.Vector, err error) {
	defer resource.RecoverOutOfMemory(&err)

	v, err = codec.DecodeVector(frame, vector.WithController(e.opts.controller))
	return v, translateError(err)
}

// Resolve resolves every pending lazy operand of op ahead of Exec.
// With a concurrency above one the resolver runs in parallel.
func (e *Engine) Resolve(ctx context.Context, op *operation.Operation) (int, error) {
	if e.opts.resolver == nil {
		return 0, ErrUnresolved
	}

	start := time.Now()
	var (
		n   int
		err error
	)
	if e.opts.concurrency > 1 {
		n, err = op.ResolveDataConcurrent(ctx, e.opts.resolver)
	} else {
		n, err = op.ResolveData(ctx, e.opts.resolver)
	}
	elapsed := time.Since(start)

	err = translateError(err)
	e.opts.metricsCollector.RecordResolve(n, elapsed, err)
	e.opts.logger.LogResolve(ctx, n, elapsed, err)
	return n, err
}

// Exec evaluates op into a new vector owned by the caller.
// An exhausted memory budget is reported as ErrOutOfMemory.
func (e *Engine) Exec(ctx context.Context, op *operation.Operation) (*vector.Vector, error) {
	start := time.Now()
	v, stats, err := e.exec(ctx, op)
	elapsed := time.Since(start)

	err = translateError(err)
	e.opts.metricsCollector.RecordExec(op.Len(), elapsed, err)
	if stats.Resolved > 0 {
		e.opts.metricsCollector.RecordResolve(stats.Resolved, stats.ResolveTime, nil)
	}
	if stats.ShortCircuits > 0 {
		e.opts.metricsCollector.RecordShortCircuit(stats.ShortCircuits, stats.Skipped)
	}

	records := 0
	if v != nil {
		records = v.Count()
	}
	e.opts.logger.LogExec(ctx, op.Len(), records, stats, elapsed, err)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e *Engine) exec(ctx context.Context, op *operation.Operation) (v *vector.Vector, stats operation.Stats, err error) {
	defer resource.RecoverOutOfMemory(&err)
	return op.ExecStats(ctx)
}

// Release tears op down: lazy tokens go to the configured token release
// callback and vectors added with AddOwned are released. Borrowed and
// resolved vectors are left alone.
func (e *Engine) Release(ctx context.Context, op *operation.Operation) {
	steps := op.Len()
	e.releaseTokens(op)
	op.Release()
	e.opts.logger.LogRelease(ctx, steps, e.opts.controller.MemoryUsage())
}

// ReleaseAll is Release that also releases every vector reachable from op,
// borrowed ones and resolved lazy operands included.
func (e *Engine) ReleaseAll(ctx context.Context, op *operation.Operation) {
	steps := op.Len()
	e.releaseTokens(op)
	op.ReleaseOperands()
	e.opts.logger.LogRelease(ctx, steps, e.opts.controller.MemoryUsage())
}

func (e *Engine) releaseTokens(op *operation.Operation) {
	if e.opts.releaseToken != nil {
		op.ReleaseData(e.opts.releaseToken)
	}
}
