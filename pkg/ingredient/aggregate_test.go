package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	t.Run("sums counts", func(t *testing.T) {
		got := Aggregate(ParseAll([]string{"domates: 2 adet", "domates: 3 adet"}))
		assert.Equal(t, []Requirement{{Name: "domates", Quantity: 5, Unit: Count}}, got)
	})

	t.Run("sums volumes in millilitres", func(t *testing.T) {
		got := Aggregate(ParseAll([]string{"su: 200 ml", "su: 1 lt"}))
		assert.Equal(t, []Requirement{{Name: "su", Quantity: 1200, Unit: VolumeML}}, got)
	})

	t.Run("keeps dimensions apart", func(t *testing.T) {
		got := Aggregate(ParseAll([]string{"tuz: 1 adet", "tuz: 5 gr"}))
		assert.Equal(t, []Requirement{
			{Name: "tuz", Quantity: 1, Unit: Count},
			{Name: "tuz", Quantity: 5, Unit: MassG},
		}, got)
	})

	t.Run("never merges unknown units", func(t *testing.T) {
		got := Aggregate([]Requirement{
			{Name: "maydanoz", Quantity: 1, Unit: Unknown},
			{Name: "maydanoz", Quantity: 2, Unit: Unknown},
		})
		assert.Len(t, got, 2)
	})

	t.Run("matches names case-insensitively", func(t *testing.T) {
		got := Aggregate([]Requirement{
			{Name: "Domates", Quantity: 1, Unit: Count},
			{Name: "DOMATES", Quantity: 1, Unit: Count},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "domates", got[0].Name)
		assert.Equal(t, 2.0, got[0].Quantity)
	})

	t.Run("sorted by name", func(t *testing.T) {
		got := Aggregate(ParseAll([]string{"zeytin: 10 adet", "biber: 2 adet", "maydanoz: 1 adet"}))
		require.Len(t, got, 3)
		assert.Equal(t, "biber", got[0].Name)
		assert.Equal(t, "maydanoz", got[1].Name)
		assert.Equal(t, "zeytin", got[2].Name)
	})

	t.Run("no float drift", func(t *testing.T) {
		got := Aggregate([]Requirement{
			{Name: "süt", Quantity: 0.1, Unit: VolumeL},
			{Name: "süt", Quantity: 0.2, Unit: VolumeL},
		})
		require.Len(t, got, 1)
		assert.Equal(t, 300.0, got[0].Quantity)
	})

	t.Run("spoons sum in tea spoons", func(t *testing.T) {
		got := Aggregate(ParseAll([]string{"şeker: 1 yemek kaşığı", "şeker: 2 çay kaşığı"}))
		assert.Equal(t, []Requirement{{Name: "şeker", Quantity: 5, Unit: SpoonTsp}}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil))
	})
}

func TestScaleLines(t *testing.T) {
	got := ScaleLines([]string{"un: 500 gr", "yumurta: 4 adet"}, PortionFactor(2, 4))
	assert.Equal(t, []Requirement{
		{Name: "un", Quantity: 250, Unit: MassG},
		{Name: "yumurta", Quantity: 2, Unit: Count},
	}, got)
}

func TestPortionFactor(t *testing.T) {
	assert.Equal(t, 0.5, PortionFactor(2, 4))
	assert.Equal(t, 1.5, PortionFactor(6, 0))
	assert.Equal(t, 1.0, PortionFactor(3, 3))
}
