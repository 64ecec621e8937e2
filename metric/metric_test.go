package metric_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/plwah"
	"github.com/hupe1980/plwah/metric"
)

var _ plwah.MetricsCollector = (*metric.PrometheusCollector)(nil)

type sample struct {
	series  int
	counter float64
	count   uint64
}

// gather returns per metric family the number of series, the counter value
// of a single-series counter and the total histogram sample count.
func gather(t *testing.T, reg *prometheus.Registry) map[string]sample {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]sample{}
	for _, mf := range families {
		s := sample{series: len(mf.GetMetric())}
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				s.counter += c.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				s.count += h.GetSampleCount()
			}
		}
		out[mf.GetName()] = s
	}
	return out
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metric.NewPrometheusCollector(reg, "plwah")
	require.NoError(t, err)

	c.RecordExec(3, time.Millisecond, nil)
	c.RecordExec(1, time.Millisecond, errors.New("boom"))
	c.RecordResolve(4, time.Millisecond, nil)
	c.RecordShortCircuit(1, 2)

	got := gather(t, reg)
	assert.Equal(t, 3, got["plwah_operation_latency_seconds"].series)
	assert.Equal(t, uint64(3), got["plwah_operation_latency_seconds"].count)
	assert.Equal(t, uint64(2), got["plwah_exec_steps"].count)
	assert.Equal(t, 4.0, got["plwah_resolved_operands_total"].counter)
	assert.Equal(t, 1.0, got["plwah_short_circuits_total"].counter)
	assert.Equal(t, 2.0, got["plwah_skipped_operands_total"].counter)
}

func TestPrometheusCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metric.NewPrometheusCollector(reg, "dup")
	require.NoError(t, err)

	_, err = metric.NewPrometheusCollector(reg, "dup")
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestPrometheusCollector_Engine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metric.NewPrometheusCollector(reg, "engine")
	require.NoError(t, err)

	eng := plwah.New(plwah.WithMetricsCollector(c))
	_, err = eng.Exec(t.Context(), eng.NewOperation())
	require.NoError(t, err)

	got := gather(t, reg)
	assert.Equal(t, uint64(1), got["engine_operation_latency_seconds"].count)
	assert.Equal(t, uint64(1), got["engine_exec_steps"].count)
}
