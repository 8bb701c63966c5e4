package nutrition

const DaysPerWeek = 7

type (
	// Entry is one assigned meal slot. Facts is nil when the recipe carries
	// no nutrition data.
	Entry struct {
		MenuItemID     string
		DayOfWeek      int
		MealType       string
		Portions       int
		RecipePortions int
		Facts          *Facts
	}

	Day struct {
		DayOfWeek  int         `json:"day_of_week"`
		Meals      int         `json:"meals"`
		Total      Facts       `json:"total"`
		DailyValue Percentages `json:"daily_value"`
		Macros     MacroShare  `json:"macros"`
	}

	Summary struct {
		Days             []Day       `json:"days"`
		WeekTotal        Facts       `json:"week_total"`
		DailyAverage     Facts       `json:"daily_average"`
		DailyValue       Percentages `json:"daily_value"`
		Macros           MacroShare  `json:"macros"`
		MissingNutrition int         `json:"missing_nutrition"`
	}
)

// Summarize scales every entry by its portions and totals them per day and
// for the week. Days without entries are zero. Daily value percentages of
// the week are taken from the daily average.
func Summarize(entries []Entry) Summary {
	days := make([]Day, DaysPerWeek)
	for i := range days {
		days[i].DayOfWeek = i
	}

	s := Summary{}
	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek >= DaysPerWeek {
			continue
		}
		d := &days[e.DayOfWeek]
		d.Meals++
		if e.Facts == nil {
			s.MissingNutrition++
			continue
		}
		scaled := e.Facts.ForPortions(e.Portions, e.RecipePortions)
		d.Total = d.Total.Add(scaled)
		s.WeekTotal = s.WeekTotal.Add(scaled)
	}

	for i := range days {
		days[i].DailyValue = PercentOfDailyValue(days[i].Total)
		days[i].Macros = Macros(days[i].Total)
	}

	s.Days = days
	s.DailyAverage = s.WeekTotal.Scale(1.0 / DaysPerWeek)
	s.DailyValue = PercentOfDailyValue(s.DailyAverage)
	s.Macros = Macros(s.WeekTotal)
	return s
}
