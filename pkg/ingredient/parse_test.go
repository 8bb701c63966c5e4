package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Requirement
	}{
		{"colon with mass", "Un: 2.5 kg", Requirement{Name: "un", Quantity: 2.5, Unit: MassKG}},
		{"comma decimal", "Un: 2,5 kg", Requirement{Name: "un", Quantity: 2.5, Unit: MassKG}},
		{"leading number", "2 domates", Requirement{Name: "domates", Quantity: 2, Unit: Count}},
		{"leading number and unit", "200 gr peynir", Requirement{Name: "peynir", Quantity: 200, Unit: MassG}},
		{"glued unit", "200gr peynir", Requirement{Name: "peynir", Quantity: 200, Unit: MassG}},
		{"embedded number", "yumurta 3 tane", Requirement{Name: "yumurta", Quantity: 3, Unit: Count}},
		{"no number", "tuz", Requirement{Name: "tuz", Quantity: 1, Unit: Count}},
		{"no number keeps whole text", "Tuz: biraz", Requirement{Name: "tuz biraz", Quantity: 1, Unit: Count}},
		{"two word unit", "Şeker: 2 yemek kaşığı", Requirement{Name: "şeker", Quantity: 2, Unit: SpoonTbsp}},
		{"tea spoon", "karabiber: 1 çay kaşığı", Requirement{Name: "karabiber", Quantity: 1, Unit: SpoonTsp}},
		{"litre alias", "Süt: 1 lt", Requirement{Name: "süt", Quantity: 1, Unit: VolumeL}},
		{"fraction", "süt: 1/2 litre", Requirement{Name: "süt", Quantity: 0.5, Unit: VolumeL}},
		{"unknown unit kept in name", "Un: 2 su bardağı", Requirement{Name: "un su bardağı", Quantity: 2, Unit: Unknown}},
		{"number without unit", "domates: 4", Requirement{Name: "domates", Quantity: 4, Unit: Count}},
		{"turkish capital i", "İNCİR: 3 adet", Requirement{Name: "incir", Quantity: 3, Unit: Count}},
		{"zero quantity falls back", "domates: 0 adet", Requirement{Name: "domates 0 adet", Quantity: 1, Unit: Count}},
		{"dash delimiter", "Domates - 2 adet", Requirement{Name: "domates", Quantity: 2, Unit: Count}},
		{"dash with mass", "Un - 2,5 kg", Requirement{Name: "un", Quantity: 2.5, Unit: MassKG}},
		{"bullet and dash", "- domates - 2 adet", Requirement{Name: "domates", Quantity: 2, Unit: Count}},
		{"dot bullet", "• Süt - 1 lt", Requirement{Name: "süt", Quantity: 1, Unit: VolumeL}},
		{"remark dropped", "Patates: 2 adet (orta boy)", Requirement{Name: "patates", Quantity: 2, Unit: Count}},
		{"remark inside name", "Soğan (kuru) - 3 adet", Requirement{Name: "soğan", Quantity: 3, Unit: Count}},
		{"hyphenated name kept", "kaşar-peynir: 200 gr", Requirement{Name: "kaşar-peynir", Quantity: 200, Unit: MassG}},
		{"dash without number", "- tuz - bir tutam", Requirement{Name: "tuz bir tutam", Quantity: 1, Unit: Count}},
		{"extra spaces", "  Domates :   2   adet ", Requirement{Name: "domates", Quantity: 2, Unit: Count}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	lines := []string{
		"domates: 2 adet",
		"un: 2.5 kg",
		"su: 200 ml",
		"süt: 1 lt",
		"peynir: 150 gr",
		"şeker: 2 yemek kaşığı",
		"tuz: 0.5 çay kaşığı",
		"zeytinyağı: 0.25 lt",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			first := Parse(line)
			second := Parse(Format(first))
			assert.Equal(t, first, second)
			assert.NotEqual(t, Unknown, first.Unit)
		})
	}
}

func TestParseFallbackRoundTrip(t *testing.T) {
	for _, line := range []string{"tuz: bir tutam", "karabiber - az", "maydanoz"} {
		t.Run(line, func(t *testing.T) {
			first := Parse(line)
			assert.NotContains(t, first.Name, ":")
			assert.Equal(t, first, Parse(Format(first)))
		})
	}
}

func TestParseAllSkipsBlankLines(t *testing.T) {
	reqs := ParseAll([]string{"domates: 2 adet", "  ", "", "tuz"})
	assert.Len(t, reqs, 2)
}

func TestParseUnit(t *testing.T) {
	assert.Equal(t, MassG, ParseUnit("gr"))
	assert.Equal(t, MassG, ParseUnit("Gram"))
	assert.Equal(t, VolumeL, ParseUnit("LT"))
	assert.Equal(t, SpoonTbsp, ParseUnit("yemek kaşığı"))
	assert.Equal(t, Count, ParseUnit("COUNT"))
	assert.Equal(t, Unknown, ParseUnit("demet"))
}

func TestConvert(t *testing.T) {
	q, ok := Convert(500, MassG, MassKG)
	assert.True(t, ok)
	assert.Equal(t, 0.5, q)

	q, ok = Convert(1, SpoonTbsp, SpoonTsp)
	assert.True(t, ok)
	assert.Equal(t, 3.0, q)

	_, ok = Convert(1, Count, MassG)
	assert.False(t, ok)

	_, ok = Convert(1, Unknown, Unknown)
	assert.False(t, ok)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryProduce, Categorize("Domates"))
	assert.Equal(t, CategoryDairy, Categorize("beyaz peynir"))
	assert.Equal(t, CategoryBeverages, Categorize("maden suyu"))
	assert.Equal(t, CategoryCleaning, Categorize("çamaşır suyu"))
	assert.Equal(t, CategoryMeatFish, Categorize("dana et"))
	assert.Equal(t, CategoryOther, Categorize("ketçap"))
	assert.Equal(t, "Diğer", Category("bogus").Label())
}
