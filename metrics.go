package plwah

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// The metric package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordExec is called after each evaluation.
	// steps is the number of top-level steps, err is nil if successful.
	RecordExec(steps int, duration time.Duration, err error)

	// RecordResolve is called after lazy operands were resolved.
	RecordResolve(resolved int, duration time.Duration, err error)

	// RecordShortCircuit is called when an evaluation cut intersection runs
	// short. skipped is the number of operands never evaluated.
	RecordShortCircuit(runs, skipped int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExec(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordResolve(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordShortCircuit(int, int)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	ExecCount       atomic.Int64
	ExecErrors      atomic.Int64
	ExecTotalNanos  atomic.Int64
	ResolveCount    atomic.Int64
	ResolveErrors   atomic.Int64
	ResolvedTotal   atomic.Int64
	ShortCircuits   atomic.Int64
	SkippedOperands atomic.Int64
}

// RecordExec implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExec(steps int, duration time.Duration, err error) {
	b.ExecCount.Add(1)
	b.ExecTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExecErrors.Add(1)
	}
}

// RecordResolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResolve(resolved int, duration time.Duration, err error) {
	b.ResolveCount.Add(1)
	b.ResolvedTotal.Add(int64(resolved))
	if err != nil {
		b.ResolveErrors.Add(1)
	}
}

// RecordShortCircuit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShortCircuit(runs, skipped int) {
	b.ShortCircuits.Add(int64(runs))
	b.SkippedOperands.Add(int64(skipped))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ExecCount:       b.ExecCount.Load(),
		ExecErrors:      b.ExecErrors.Load(),
		ExecAvgNanos:    b.getAvgExecNanos(),
		ResolveCount:    b.ResolveCount.Load(),
		ResolveErrors:   b.ResolveErrors.Load(),
		ResolvedTotal:   b.ResolvedTotal.Load(),
		ShortCircuits:   b.ShortCircuits.Load(),
		SkippedOperands: b.SkippedOperands.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgExecNanos() int64 {
	count := b.ExecCount.Load()
	if count == 0 {
		return 0
	}
	return b.ExecTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ExecCount       int64
	ExecErrors      int64
	ExecAvgNanos    int64
	ResolveCount    int64
	ResolveErrors   int64
	ResolvedTotal   int64
	ShortCircuits   int64
	SkippedOperands int64
}
