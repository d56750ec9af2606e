package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	TurnsTotal   *prometheus.CounterVec
	LLMDuration  prometheus.Histogram
	OrdersSaved  prometheus.Counter
	LiveSessions prometheus.GaugeFunc
}

// New registers the collectors on reg and returns them. Pass a fresh
// registry in tests to keep them isolated.
func New(reg prometheus.Registerer, liveSessions func() float64) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maitred",
			Name:      "turns_total",
			Help:      "Dialogue turns processed, by outcome.",
		}, []string{"outcome"}),
		LLMDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "maitred",
			Name:      "llm_request_duration_seconds",
			Help:      "Latency of language generation calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		OrdersSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "maitred",
			Name:      "orders_saved_total",
			Help:      "Finalized orders persisted.",
		}),
	}
	if liveSessions != nil {
		m.LiveSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "maitred",
			Name:      "live_sessions",
			Help:      "Sessions currently held in memory.",
		}, liveSessions)
	}

	reg.MustRegister(m.TurnsTotal, m.LLMDuration, m.OrdersSaved)
	if m.LiveSessions != nil {
		reg.MustRegister(m.LiveSessions)
	}
	return m
}

// Turn outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
