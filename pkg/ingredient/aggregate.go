package ingredient

import (
	"sort"

	"github.com/shopspring/decimal"
)

var dimensionOrder = map[Dimension]int{
	DimensionCount:   0,
	DimensionMass:    1,
	DimensionVolume:  2,
	DimensionSpoon:   3,
	DimensionUnknown: 4,
}

type group struct {
	name    string
	sums    map[Dimension]decimal.Decimal
	unknown []Requirement
}

// Aggregate merges requirements into one line per (name, dimension).
// Names match case-insensitively and exactly. Quantities sharing a
// dimension are summed in the dimension's base unit; Unknown units are
// never merged and each stays its own line. The result is sorted by name.
func Aggregate(reqs []Requirement) []Requirement {
	groups := make(map[string]*group)
	for _, r := range reqs {
		if r.Quantity <= 0 {
			continue
		}
		name := NormalizeName(r.Name)
		g, ok := groups[name]
		if !ok {
			g = &group{name: name, sums: make(map[Dimension]decimal.Decimal)}
			groups[name] = g
		}

		base, ok := toBase(decimal.NewFromFloat(r.Quantity), r.Unit)
		if !ok {
			g.unknown = append(g.unknown, Requirement{Name: name, Quantity: r.Quantity, Unit: Unknown})
			continue
		}
		dim := r.Unit.Dimension()
		g.sums[dim] = g.sums[dim].Add(base)
	}

	out := make([]Requirement, 0, len(groups))
	for _, g := range groups {
		for dim, sum := range g.sums {
			out = append(out, Requirement{Name: g.name, Quantity: sum.InexactFloat64(), Unit: baseUnits[dim]})
		}
		out = append(out, g.unknown...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return dimensionOrder[out[i].Unit.Dimension()] < dimensionOrder[out[j].Unit.Dimension()]
	})
	return out
}
