package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "magic_wallet"

// Registry holds the wallet's collectors on a private prometheus registry.
type Registry struct {
	registry     *prometheus.Registry
	outcomes     *prometheus.CounterVec
	confirmation *prometheus.HistogramVec
}

func New() *Registry {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of finished submissions by operation and result",
	}, []string{"operation", "result"})

	confirmation := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confirmation_seconds",
		Help:      "Time from broadcast to mined receipt",
		Buckets:   []float64{1, 2, 5, 10, 15, 30, 60, 120, 300},
	}, []string{"operation"})

	r := prometheus.NewRegistry()
	r.MustRegister(
		outcomes,
		confirmation,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		registry:     r,
		outcomes:     outcomes,
		confirmation: confirmation,
	}
}

func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOutcome counts a finished submission. Confirmation latency is only recorded for
// submissions that produced a receipt.
func (m *Registry) ObserveOutcome(operation string, result string, confirmation time.Duration) {
	m.outcomes.WithLabelValues(operation, result).Inc()
	if confirmation > 0 {
		m.confirmation.WithLabelValues(operation).Observe(confirmation.Seconds())
	}
}
