package ingredient

import "strings"

// Category is the market aisle an ingredient is bought from.
type Category string

const (
	CategoryProduce       Category = "produce"
	CategoryMeatFish      Category = "meat_fish"
	CategoryDairy         Category = "dairy"
	CategoryGrainsLegumes Category = "grains_legumes"
	CategoryDeli          Category = "deli"
	CategoryBeverages     Category = "beverages"
	CategoryCleaning      Category = "cleaning"
	CategoryPersonalCare  Category = "personal_care"
	CategoryOther         Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryProduce:       "Meyve & Sebze",
	CategoryMeatFish:      "Et, Tavuk & Balık",
	CategoryDairy:         "Süt Ürünleri",
	CategoryGrainsLegumes: "Tahıl & Baklagil",
	CategoryDeli:          "Şarküteri",
	CategoryBeverages:     "İçecek",
	CategoryCleaning:      "Temizlik",
	CategoryPersonalCare:  "Kişisel Bakım",
	CategoryOther:         "Diğer",
}

// checked in order, first hit wins
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryProduce, []string{
		"domates", "salatalık", "biber", "soğan", "taze soğan", "sarımsak", "elma", "muz", "portakal",
		"limon", "üzüm", "çilek", "kiraz", "kavun", "karpuz", "havuç", "patates", "kabak", "patlıcan",
		"marul", "maydanoz", "dereotu", "nane", "ıspanak", "mantar",
	}},
	{CategoryMeatFish, []string{
		"et", "kıyma", "tavuk", "balık", "köfte", "dana", "kuzu", "hindi", "sosis", "sucuk", "somon",
		"levrek", "hamsi", "ton balığı",
	}},
	{CategoryDairy, []string{
		"süt", "yoğurt", "peynir", "beyaz peynir", "kaşar", "tereyağı", "tereyağ", "krema", "ayran",
		"kefir", "yumurta",
	}},
	{CategoryGrainsLegumes, []string{
		"ekmek", "un", "pirinç", "makarna", "bulgur", "nohut", "mercimek", "fasulye", "kuru fasulye",
		"yulaf", "irmik",
	}},
	{CategoryDeli, []string{"salam", "jambon", "pastırma", "zeytin"}},
	{CategoryBeverages, []string{"su", "maden suyu", "meyve suyu", "kola", "gazoz", "çay", "kahve", "limonata"}},
	{CategoryCleaning, []string{"deterjan", "çamaşır suyu", "bulaşık", "temizlik", "sabun"}},
	{CategoryPersonalCare, []string{"şampuan", "diş macunu", "krem", "parfüm"}},
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// Categorize guesses the category of an ingredient from whole words of its
// normalized name. Multi-word keywords are matched before single words.
func Categorize(name string) Category {
	padded := " " + NormalizeName(name) + " "
	for _, multi := range []bool{true, false} {
		for _, ck := range categoryKeywords {
			for _, w := range ck.words {
				if strings.Contains(w, " ") != multi {
					continue
				}
				if strings.Contains(padded, " "+w+" ") {
					return ck.category
				}
			}
		}
	}
	return CategoryOther
}
