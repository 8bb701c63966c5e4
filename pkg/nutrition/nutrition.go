package nutrition

import (
	"math"

	"pantry-planner/pkg/ingredient"
)

// Facts holds nutrition values for a recipe's declared portion count.
type Facts struct {
	Calories      float64 `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	FiberG        float64 `json:"fiber_g,omitempty"`
	SugarG        float64 `json:"sugar_g,omitempty"`
	SodiumMg      float64 `json:"sodium_mg,omitempty"`
	CholesterolMg float64 `json:"cholesterol_mg,omitempty"`
	SaturatedFatG float64 `json:"saturated_fat_g,omitempty"`
	TransFatG     float64 `json:"trans_fat_g,omitempty"`
}

// DailyValues is the fixed reference intake for percentage calculations.
var DailyValues = Facts{
	Calories: 2000,
	ProteinG: 50,
	CarbsG:   300,
	FatG:     70,
	FiberG:   25,
	SodiumMg: 2400,
}

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

type (
	Percentages struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
		Fiber    float64 `json:"fiber"`
		Sodium   float64 `json:"sodium"`
	}

	// MacroShare is the share of macro calories coming from each macro.
	MacroShare struct {
		ProteinPct float64 `json:"protein_pct"`
		CarbsPct   float64 `json:"carbs_pct"`
		FatPct     float64 `json:"fat_pct"`
	}
)

func (f Facts) Scale(factor float64) Facts {
	return Facts{
		Calories:      f.Calories * factor,
		ProteinG:      f.ProteinG * factor,
		CarbsG:        f.CarbsG * factor,
		FatG:          f.FatG * factor,
		FiberG:        f.FiberG * factor,
		SugarG:        f.SugarG * factor,
		SodiumMg:      f.SodiumMg * factor,
		CholesterolMg: f.CholesterolMg * factor,
		SaturatedFatG: f.SaturatedFatG * factor,
		TransFatG:     f.TransFatG * factor,
	}
}

func (f Facts) Add(o Facts) Facts {
	return Facts{
		Calories:      f.Calories + o.Calories,
		ProteinG:      f.ProteinG + o.ProteinG,
		CarbsG:        f.CarbsG + o.CarbsG,
		FatG:          f.FatG + o.FatG,
		FiberG:        f.FiberG + o.FiberG,
		SugarG:        f.SugarG + o.SugarG,
		SodiumMg:      f.SodiumMg + o.SodiumMg,
		CholesterolMg: f.CholesterolMg + o.CholesterolMg,
		SaturatedFatG: f.SaturatedFatG + o.SaturatedFatG,
		TransFatG:     f.TransFatG + o.TransFatG,
	}
}

// ForPortions scales facts written for recipePortions to requested portions.
func (f Facts) ForPortions(requested, recipePortions int) Facts {
	return f.Scale(ingredient.PortionFactor(requested, recipePortions))
}

func PercentOfDailyValue(f Facts) Percentages {
	return Percentages{
		Calories: percent(f.Calories, DailyValues.Calories),
		Protein:  percent(f.ProteinG, DailyValues.ProteinG),
		Carbs:    percent(f.CarbsG, DailyValues.CarbsG),
		Fat:      percent(f.FatG, DailyValues.FatG),
		Fiber:    percent(f.FiberG, DailyValues.FiberG),
		Sodium:   percent(f.SodiumMg, DailyValues.SodiumMg),
	}
}

func Macros(f Facts) MacroShare {
	protein := f.ProteinG * kcalPerGramProtein
	carbs := f.CarbsG * kcalPerGramCarbs
	fat := f.FatG * kcalPerGramFat
	total := protein + carbs + fat
	if total == 0 {
		return MacroShare{}
	}
	return MacroShare{
		ProteinPct: round1(protein / total * 100),
		CarbsPct:   round1(carbs / total * 100),
		FatPct:     round1(fat / total * 100),
	}
}

func percent(v, ref float64) float64 {
	return round1(v / ref * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
