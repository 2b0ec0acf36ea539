package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	rec.IncCounter(EventAddressRejected, map[string]string{"network": "solana"})
	rec.IncCounter(EventAddressRejected, map[string]string{"network": "solana"})
	rec.IncCounter(EventProofRejected, nil)
	rec.ObserveLatency(OperationPrepareRequest, 3*time.Microsecond, map[string]string{"network": "ethereum"})

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.counters.WithLabelValues(EventAddressRejected, "solana")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.counters.WithLabelValues(EventProofRejected, "none")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.histogram))
}

func TestPrometheusRecorderDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	_, err = NewPrometheusRecorder(reg)
	assert.Error(t, err)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncCounter(EventRequestPrepared, nil)
	r.ObserveLatency(OperationPrepareRequest, time.Second, nil)
}
