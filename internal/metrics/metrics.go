package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh results
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
	RefreshSkipped = "skipped"
	RefreshShared  = "shared"
	RefreshStale   = "stale"
)

// Metrics holds the client collectors. A nil *Metrics records nothing.
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec
	RefreshesTotal         *prometheus.CounterVec
	AuthExpiredTotal       prometheus.Counter
}

// New creates collectors under the given namespace
func New(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_requests_total",
				Help:      "Total number of logical API requests by outcome code.",
			},
			[]string{"method", "code"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_request_duration_seconds",
				Help:      "Duration of logical API requests, refresh and retry included.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_token_refreshes_total",
				Help:      "Total number of token refresh attempts by result.",
			},
			[]string{"result"},
		),
		AuthExpiredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_auth_expired_total",
				Help:      "Total number of unrecoverable authentication failures.",
			},
		),
	}
}

// Register registers all collectors. Collectors already registered on registerer
// are adopted, so every Metrics sharing a registerer records into the same series.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	if m == nil || registerer == nil {
		return nil
	}
	var err error
	if m.RequestsTotal, err = register(registerer, m.RequestsTotal); err != nil {
		return err
	}
	if m.RequestDurationSeconds, err = register(registerer, m.RequestDurationSeconds); err != nil {
		return err
	}
	if m.RefreshesTotal, err = register(registerer, m.RefreshesTotal); err != nil {
		return err
	}
	m.AuthExpiredTotal, err = register(registerer, m.AuthExpiredTotal)
	return err
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return collector, err
}

func (m *Metrics) ObserveRequest(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, code).Inc()
	m.RequestDurationSeconds.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRefresh(result string) {
	if m == nil {
		return
	}
	m.RefreshesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAuthExpired() {
	if m == nil {
		return
	}
	m.AuthExpiredTotal.Inc()
}
