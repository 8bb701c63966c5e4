package ingredient

import "github.com/shopspring/decimal"

// DefaultPortions is assumed for recipes that do not declare a portion count.
const DefaultPortions = 4

// PortionFactor is the multiplier that turns a recipe written for
// recipePortions into requested portions.
func PortionFactor(requested, recipePortions int) float64 {
	if recipePortions <= 0 {
		recipePortions = DefaultPortions
	}
	return decimal.NewFromInt(int64(requested)).
		Div(decimal.NewFromInt(int64(recipePortions))).
		InexactFloat64()
}

func Scale(r Requirement, factor float64) Requirement {
	r.Quantity = decimal.NewFromFloat(r.Quantity).Mul(decimal.NewFromFloat(factor)).InexactFloat64()
	return r
}

// ScaleLines parses recipe lines and scales each one by factor.
func ScaleLines(lines []string, factor float64) []Requirement {
	reqs := ParseAll(lines)
	for i := range reqs {
		reqs[i] = Scale(reqs[i], factor)
	}
	return reqs
}
