package ingredient

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	WarningKind string

	// Warning is a non-fatal notice attached to a computation result.
	Warning struct {
		Kind       WarningKind `json:"kind"`
		Ingredient string      `json:"ingredient,omitempty"`
		MenuItemID string      `json:"menu_item_id,omitempty"`
		Message    string      `json:"message"`
	}

	// Deficiency is the shortfall for one required line. Available and
	// Missing are expressed in Required.Unit.
	Deficiency struct {
		Required  Requirement `json:"required"`
		Available float64     `json:"available"`
		Missing   float64     `json:"missing"`
	}

	Reconciliation struct {
		Sufficient []Requirement `json:"sufficient"`
		Deficient  []Deficiency  `json:"deficient"`
		Warnings   []Warning     `json:"warnings"`
	}
)

const (
	WarningUnresolvedUnit WarningKind = "unresolved_unit"
	WarningMissingRecipe  WarningKind = "missing_recipe"
)

// Reconcile compares what is needed against what is in stock. Both sides
// are aggregated first, so same-named stock lines count as one amount.
// Amounts are only compared within one dimension; a line whose stock
// exists only in another dimension (or in an unknown unit) is reported as
// fully missing with an unresolved_unit warning.
func Reconcile(need, have []Requirement) Reconciliation {
	stock := make(map[string]map[Dimension]decimal.Decimal)
	for _, h := range Aggregate(have) {
		dims, ok := stock[h.Name]
		if !ok {
			dims = make(map[Dimension]decimal.Decimal)
			stock[h.Name] = dims
		}
		dim := h.Unit.Dimension()
		dims[dim] = dims[dim].Add(decimal.NewFromFloat(h.Quantity))
	}

	res := Reconciliation{
		Sufficient: []Requirement{},
		Deficient:  []Deficiency{},
		Warnings:   []Warning{},
	}
	for _, n := range Aggregate(need) {
		required := decimal.NewFromFloat(n.Quantity)
		dims, named := stock[n.Name]

		avail, comparable := decimal.Zero, false
		if n.Unit.Dimension() != DimensionUnknown {
			avail, comparable = dims[n.Unit.Dimension()]
		}

		switch {
		case comparable && avail.GreaterThanOrEqual(required):
			res.Sufficient = append(res.Sufficient, n)
		case comparable:
			res.Deficient = append(res.Deficient, Deficiency{
				Required:  n,
				Available: avail.InexactFloat64(),
				Missing:   required.Sub(avail).InexactFloat64(),
			})
		default:
			res.Deficient = append(res.Deficient, Deficiency{Required: n, Missing: n.Quantity})
			if named || n.Unit == Unknown {
				res.Warnings = append(res.Warnings, Warning{
					Kind:       WarningUnresolvedUnit,
					Ingredient: n.Name,
					Message:    fmt.Sprintf("%s could not be matched against stock by unit", n.Name),
				})
			}
		}
	}
	return res
}
