package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ListBuilt("menu_plan")
	m.ListBuilt("menu_plan")
	m.Warned("unresolved_unit", 3)
	m.Warned("missing_recipe", 0)
	m.Rejected("list_completed")
	m.Rejected("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ShoppingListsBuilt.WithLabelValues("menu_plan")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Warnings.WithLabelValues("unresolved_unit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("list_completed")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ListBuilt("lines")
		m.Warned("unresolved_unit", 1)
		m.Mutated("shopping_list", "toggle")
		m.Rejected("list_completed")
	})
}
