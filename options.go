package plwah

import (
	"log/slog"

	"github.com/hupe1980/plwah/estimate"
	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/resource"
)

type options struct {
	controller       *resource.Controller
	resolver         operation.Resolver
	estimator        estimate.Estimator
	concurrency      int
	releaseToken     func(token any)
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithController charges every buffer the engine's operations and results
// allocate to rc. Exceeding its memory limit fails the evaluation with
// ErrOutOfMemory unless rc carries its own out-of-memory hook.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithResolver configures how lazy operands are turned into vectors.
//
// Example with a blob store:
//
//	store := blobstore.NewLocalStore("./postings")
//	eng := plwah.New(plwah.WithResolver(resolver.BlobResolver(store)))
func WithResolver(r operation.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithEstimator configures the estimator that orders intersections.
// If nil is passed, estimate.Popcount is used.
func WithEstimator(e estimate.Estimator) Option {
	return func(o *options) {
		if e == nil {
			e = estimate.Popcount{}
		}
		o.estimator = e
	}
}

// WithConcurrency bounds how many lazy operands Resolve fetches at once.
// Values <= 1 resolve sequentially.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithTokenRelease configures a callback Release invokes for every lazy
// token, for example to drop a reference the token holds.
func WithTokenRelease(fn func(token any)) Option {
	return func(o *options) {
		o.releaseToken = fn
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &plwah.BasicMetricsCollector{}
//	eng := plwah.New(plwah.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Execs: %d, Avg latency: %dns\n", stats.ExecCount, stats.ExecAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		estimator:        estimate.Popcount{},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
