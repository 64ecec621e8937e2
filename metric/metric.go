// Package metric exports engine metrics to Prometheus.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements plwah.MetricsCollector.
type PrometheusCollector struct {
	opLatency     *prometheus.HistogramVec
	execSteps     prometheus.Histogram
	resolved      prometheus.Counter
	shortCircuits prometheus.Counter
	skipped       prometheus.Counter
}

// NewPrometheusCollector creates the collector's metrics and registers them
// with reg. A nil reg selects prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of exec and resolve calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		execSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "exec_steps",
			Help:      "Top-level steps per evaluated operation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		resolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolved_operands_total",
			Help:      "Lazy operands resolved",
		}),
		shortCircuits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "short_circuits_total",
			Help:      "Intersection runs cut short by an empty accumulator or disjoint bounds",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_operands_total",
			Help:      "Operands never evaluated because of a short circuit",
		}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.execSteps, c.resolved, c.shortCircuits, c.skipped} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordExec implements plwah.MetricsCollector.
func (c *PrometheusCollector) RecordExec(steps int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("exec", status(err)).Observe(d.Seconds())
	c.execSteps.Observe(float64(steps))
}

// RecordResolve implements plwah.MetricsCollector.
func (c *PrometheusCollector) RecordResolve(resolved int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("resolve", status(err)).Observe(d.Seconds())
	c.resolved.Add(float64(resolved))
}

// RecordShortCircuit implements plwah.MetricsCollector.
func (c *PrometheusCollector) RecordShortCircuit(runs, skipped int) {
	c.shortCircuits.Add(float64(runs))
	c.skipped.Add(float64(skipped))
}
