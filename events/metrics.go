package events

import (
	"github.com/nestera-labs/nestera"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "nestera"

// MetricsSink counts published events per kind.
type MetricsSink struct {
	total *prometheus.CounterVec
}

var _ Sink = (*MetricsSink)(nil)

// NewMetricsSink creates the counters and registers them with given
// registerer. It panics if a collector with the same name is already
// registered.
func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "events_total",
			Help:      "Total number of published ledger events",
		},
		[]string{"kind"},
	)
	reg.MustRegister(total)
	return &MetricsSink{total: total}
}

func (s *MetricsSink) Publish(_ nestera.Context, e Event) {
	s.total.WithLabelValues(e.Kind).Inc()
}

// Counter returns the counter of given event kind.
func (s *MetricsSink) Counter(kind string) prometheus.Counter {
	return s.total.WithLabelValues(kind)
}
