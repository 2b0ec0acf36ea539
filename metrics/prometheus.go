package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the layerx402 collectors with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default handler.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "layerx402",
			Name:      "events_total",
			Help:      "layerx402 validation event counters",
		},
		[]string{"type", "network"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "layerx402",
			Name:      "latency_seconds",
			Help:      "layerx402 operation latency",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
		},
		[]string{"operation", "network"},
	)

	for _, c := range []prometheus.Collector{counters, histogram} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}, nil
}

// IncCounter counts one event of the given type. Only the network label is
// kept; callers are expected to have bounded it already.
func (p *PrometheusRecorder) IncCounter(event string, labels map[string]string) {
	p.counters.WithLabelValues(event, networkLabel(labels)).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(operation string, d time.Duration, labels map[string]string) {
	p.histogram.WithLabelValues(operation, networkLabel(labels)).Observe(d.Seconds())
}

func networkLabel(labels map[string]string) string {
	if n := labels["network"]; n != "" {
		return n
	}
	return "none"
}
