package app

import (
	"strconv"
	"time"

	"github.com/nestera-labs/nestera/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "nestera"

// txMetrics counts processed transactions per call and result code and
// measures how long their execution takes.
type txMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newTxMetrics(reg prometheus.Registerer) (*txMetrics, error) {
	m := &txMetrics{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "transactions_total",
				Help:      "Total number of processed transactions",
			},
			[]string{"call", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      "transaction_duration_seconds",
				Help:      "Time spent executing a single transaction",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"call"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidState, "register collector: %s", err)
		}
	}
	return m, nil
}

func (m *txMetrics) observe(call string, start time.Time, code uint32) {
	m.total.WithLabelValues(call, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(call).Observe(time.Since(start).Seconds())
}
