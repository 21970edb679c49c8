package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "ridefinderz"

// FilterMetrics tracks widget session activity. A nil *FilterMetrics is a no-op.
type FilterMetrics struct {
	emissions     *prometheus.CounterVec
	drags         prometheus.Counter
	reconciles    *prometheus.CounterVec
	sinkFailures  *prometheus.CounterVec
	activeSession prometheus.Gauge
}

// NewFilterMetrics registers the filter metrics on the provided registerer.
func NewFilterMetrics(reg prometheus.Registerer) *FilterMetrics {
	if reg == nil {
		return &FilterMetrics{}
	}
	m := &FilterMetrics{
		emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_emissions_total",
			Help:      "Criteria emitted to consumers, by trigger.",
		}, []string{"trigger"}),
		drags: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slider_drag_updates_total",
			Help:      "Slider drag updates applied without emission.",
		}),
		reconciles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_reconciles_total",
			Help:      "External snapshot reconciliations, by price outcome.",
		}, []string{"outcome"}),
		sinkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_sink_failures_total",
			Help:      "Criteria deliveries that failed, by sink.",
		}, []string{"sink"}),
		activeSession: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filter_sessions_active",
			Help:      "Widget sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.emissions, m.drags, m.reconciles, m.sinkFailures, m.activeSession)
	return m
}

func (m *FilterMetrics) IncEmission(trigger string) {
	if m == nil || m.emissions == nil {
		return
	}
	m.emissions.WithLabelValues(normalizeLabel(trigger)).Inc()
}

func (m *FilterMetrics) IncDrag() {
	if m == nil || m.drags == nil {
		return
	}
	m.drags.Inc()
}

// IncReconcile records a sync; outcome is "applied", "kept", "rejected" or "absent".
func (m *FilterMetrics) IncReconcile(outcome string) {
	if m == nil || m.reconciles == nil {
		return
	}
	m.reconciles.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *FilterMetrics) IncSinkFailure(sink string) {
	if m == nil || m.sinkFailures == nil {
		return
	}
	m.sinkFailures.WithLabelValues(normalizeLabel(sink)).Inc()
}

func (m *FilterMetrics) SetActiveSessions(n int) {
	if m == nil || m.activeSession == nil {
		return
	}
	m.activeSession.Set(float64(n))
}
