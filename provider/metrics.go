package provider

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultConfirmed = "confirmed"
	resultRejected  = "rejected"
	resultFailed    = "failed"
	resultTimeout   = "timeout"
)

type metrics struct {
	transactions *prometheus.CounterVec
	confirmation prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solswap",
			Name:      "transactions_total",
			Help:      "Transactions submitted through the provider, by outcome.",
		}, []string{"result"}),
		confirmation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "solswap",
			Name:      "confirmation_seconds",
			Help:      "Time from submission until the transaction reached the provider commitment.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
	if reg == nil {
		return m, nil
	}
	if err := reg.Register(m.transactions); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.transactions = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.confirmation); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		m.confirmation = are.ExistingCollector.(prometheus.Histogram)
	}
	return m, nil
}

func (m *metrics) observe(result string, elapsed time.Duration) {
	m.transactions.WithLabelValues(result).Inc()
	if result == resultConfirmed {
		m.confirmation.Observe(elapsed.Seconds())
	}
}
