package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pantry"

// Metrics groups the collectors the services report to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ShoppingListsBuilt *prometheus.CounterVec
	Warnings           *prometheus.CounterVec
	Mutations          *prometheus.CounterVec
	Rejections         *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ShoppingListsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_lists_built_total",
			Help:      "Shopping lists built, by source (lines, menu_plan).",
		}, []string{"source"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_warnings_total",
			Help:      "Non-fatal warnings produced while aggregating or reconciling.",
		}, []string{"kind"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_mutations_total",
			Help:      "Committed mutations, by entity and operation.",
		}, []string{"entity", "operation"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_state_rejections_total",
			Help:      "Operations rejected with an invalid state reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.ShoppingListsBuilt, m.Warnings, m.Mutations, m.Rejections)
	return m
}

func (m *Metrics) ListBuilt(source string) {
	if m == nil {
		return
	}
	m.ShoppingListsBuilt.WithLabelValues(source).Inc()
}

func (m *Metrics) Warned(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Warnings.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) Mutated(entity, operation string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(entity, operation).Inc()
}

func (m *Metrics) Rejected(reason string) {
	if m == nil || reason == "" {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}
