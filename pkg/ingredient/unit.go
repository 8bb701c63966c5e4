package ingredient

import (
	"strings"

	"github.com/shopspring/decimal"
)

type (
	// Unit is a canonical measurement unit. Units only combine within the
	// same Dimension, after conversion to the dimension's base unit.
	Unit string

	Dimension string

	unitDef struct {
		dimension Dimension
		toBase    decimal.Decimal
		label     string
	}
)

const (
	Count     Unit = "COUNT"
	MassG     Unit = "MASS_G"
	MassKG    Unit = "MASS_KG"
	VolumeML  Unit = "VOLUME_ML"
	VolumeL   Unit = "VOLUME_L"
	SpoonTsp  Unit = "SPOON_TSP"
	SpoonTbsp Unit = "SPOON_TBSP"
	Unknown   Unit = "UNKNOWN"
)

const (
	DimensionCount   Dimension = "count"
	DimensionMass    Dimension = "mass"
	DimensionVolume  Dimension = "volume"
	DimensionSpoon   Dimension = "spoon"
	DimensionUnknown Dimension = "unknown"
)

// spoons are kept apart from volume: a kitchen spoon is not a fixed
// millilitre amount in the recipes this service receives.
var unitTable = map[Unit]unitDef{
	Count:     {dimension: DimensionCount, toBase: decimal.NewFromInt(1), label: "adet"},
	MassG:     {dimension: DimensionMass, toBase: decimal.NewFromInt(1), label: "gr"},
	MassKG:    {dimension: DimensionMass, toBase: decimal.NewFromInt(1000), label: "kg"},
	VolumeML:  {dimension: DimensionVolume, toBase: decimal.NewFromInt(1), label: "ml"},
	VolumeL:   {dimension: DimensionVolume, toBase: decimal.NewFromInt(1000), label: "lt"},
	SpoonTsp:  {dimension: DimensionSpoon, toBase: decimal.NewFromInt(1), label: "çay kaşığı"},
	SpoonTbsp: {dimension: DimensionSpoon, toBase: decimal.NewFromInt(3), label: "yemek kaşığı"},
}

var baseUnits = map[Dimension]Unit{
	DimensionCount:  Count,
	DimensionMass:   MassG,
	DimensionVolume: VolumeML,
	DimensionSpoon:  SpoonTsp,
}

var aliasTable = map[string]Unit{
	"adet":  Count,
	"tane":  Count,
	"parça": Count,
	"piece": Count,
	"pcs":   Count,

	"g":     MassG,
	"gr":    MassG,
	"gram":  MassG,
	"grams": MassG,

	"kg":       MassKG,
	"kilo":     MassKG,
	"kilogram": MassKG,

	"ml":        VolumeML,
	"mililitre": VolumeML,

	"l":     VolumeL,
	"lt":    VolumeL,
	"litre": VolumeL,
	"liter": VolumeL,

	"çay kaşığı": SpoonTsp,
	"tsp":        SpoonTsp,

	"yemek kaşığı": SpoonTbsp,
	"tbsp":         SpoonTbsp,
}

// longest alias, in words
const maxAliasWords = 2

// ParseUnit resolves a unit spelling (alias or canonical code) to a Unit.
// Unmatched spellings resolve to Unknown.
func ParseUnit(s string) Unit {
	key := strings.TrimSuffix(NormalizeName(s), ".")
	if u, ok := aliasTable[key]; ok {
		return u
	}
	if u := Unit(strings.ToUpper(strings.TrimSpace(s))); u.Valid() {
		return u
	}
	return Unknown
}

// Valid reports whether u is one of the known canonical units.
func (u Unit) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

func (u Unit) Dimension() Dimension {
	if def, ok := unitTable[u]; ok {
		return def.dimension
	}
	return DimensionUnknown
}

// Base returns the base unit of u's dimension, or Unknown.
func (u Unit) Base() Unit {
	if b, ok := baseUnits[u.Dimension()]; ok {
		return b
	}
	return Unknown
}

// Label is the display spelling used when a requirement is serialized.
func (u Unit) Label() string {
	return unitTable[u].label
}

// Compatible reports whether quantities in u and o may be summed.
func (u Unit) Compatible(o Unit) bool {
	d := u.Dimension()
	return d != DimensionUnknown && d == o.Dimension()
}

// toBase converts q in u into the base unit of u's dimension. The second
// result is false for Unknown units.
func toBase(q decimal.Decimal, u Unit) (decimal.Decimal, bool) {
	def, ok := unitTable[u]
	if !ok {
		return decimal.Zero, false
	}
	return q.Mul(def.toBase), true
}

// Convert expresses q (in from) in the to unit. Conversion never crosses
// dimensions.
func Convert(q float64, from, to Unit) (float64, bool) {
	if !from.Compatible(to) {
		return 0, false
	}
	base, _ := toBase(decimal.NewFromFloat(q), from)
	return base.Div(unitTable[to].toBase).InexactFloat64(), true
}

// ToBase converts q in u to its base unit and returns the base unit.
func ToBase(q float64, u Unit) (float64, Unit) {
	base, ok := toBase(decimal.NewFromFloat(q), u)
	if !ok {
		return q, Unknown
	}
	return base.InexactFloat64(), u.Base()
}

// matchUnit matches the longest alias at the start of tokens and returns
// the unit and the number of tokens it consumed.
func matchUnit(tokens []string) (Unit, int) {
	for n := maxAliasWords; n > 0; n-- {
		if len(tokens) < n {
			continue
		}
		key := strings.TrimSuffix(strings.Join(tokens[:n], " "), ".")
		if u, ok := aliasTable[key]; ok {
			return u, n
		}
	}
	return Unknown, 0
}
