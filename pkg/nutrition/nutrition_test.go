package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPortionsHalvesEveryField(t *testing.T) {
	f := Facts{Calories: 800, ProteinG: 40, CarbsG: 100, FatG: 20, FiberG: 10, SugarG: 8, SodiumMg: 1200}
	got := f.ForPortions(2, 4)
	assert.Equal(t, Facts{Calories: 400, ProteinG: 20, CarbsG: 50, FatG: 10, FiberG: 5, SugarG: 4, SodiumMg: 600}, got)
}

func TestForPortionsDefaultsToFour(t *testing.T) {
	f := Facts{Calories: 400}
	assert.Equal(t, 100.0, f.ForPortions(1, 0).Calories)
}

func TestPercentOfDailyValue(t *testing.T) {
	p := PercentOfDailyValue(Facts{Calories: 1000, ProteinG: 25, CarbsG: 150, FatG: 35, FiberG: 5, SodiumMg: 600})
	assert.Equal(t, Percentages{Calories: 50, Protein: 50, Carbs: 50, Fat: 50, Fiber: 20, Sodium: 25}, p)
}

func TestMacros(t *testing.T) {
	m := Macros(Facts{ProteinG: 25, CarbsG: 50, FatG: 0})
	assert.InDelta(t, 33.3, m.ProteinPct, 0.001)
	assert.InDelta(t, 66.7, m.CarbsPct, 0.001)
	assert.Equal(t, 0.0, m.FatPct)

	assert.Equal(t, MacroShare{}, Macros(Facts{}))
}

func TestSummarize(t *testing.T) {
	lunch := &Facts{Calories: 2000, ProteinG: 100, CarbsG: 200, FatG: 80, FiberG: 20, SodiumMg: 2000}
	dinner := &Facts{Calories: 1200, ProteinG: 60, CarbsG: 100, FatG: 40}

	s := Summarize([]Entry{
		{MenuItemID: "a", DayOfWeek: 0, MealType: "lunch", Portions: 2, RecipePortions: 4, Facts: lunch},
		{MenuItemID: "b", DayOfWeek: 0, MealType: "dinner", Portions: 4, RecipePortions: 4, Facts: dinner},
		{MenuItemID: "c", DayOfWeek: 3, MealType: "dinner", Portions: 2, RecipePortions: 2, Facts: dinner},
		{MenuItemID: "d", DayOfWeek: 5, MealType: "breakfast", Portions: 1, RecipePortions: 1, Facts: nil},
	})

	require.Len(t, s.Days, DaysPerWeek)
	assert.Equal(t, 2, s.Days[0].Meals)
	assert.Equal(t, 2200.0, s.Days[0].Total.Calories)
	assert.Equal(t, 110.0, s.Days[0].Total.ProteinG)
	assert.Equal(t, 110.0, s.Days[0].DailyValue.Calories)

	assert.Equal(t, Facts{}, s.Days[1].Total)
	assert.Equal(t, 0, s.Days[1].Meals)

	assert.Equal(t, 1200.0, s.Days[3].Total.Calories)
	assert.Equal(t, 1, s.Days[5].Meals)
	assert.Equal(t, 1, s.MissingNutrition)

	assert.Equal(t, 3400.0, s.WeekTotal.Calories)
	assert.InDelta(t, 3400.0/7, s.DailyAverage.Calories, 0.0001)
}

func TestSummarizeEmptyWeek(t *testing.T) {
	s := Summarize(nil)
	require.Len(t, s.Days, DaysPerWeek)
	assert.Equal(t, Facts{}, s.WeekTotal)
	assert.Equal(t, Percentages{}, s.DailyValue)
}
