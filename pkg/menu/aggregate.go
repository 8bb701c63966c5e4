package menu

import (
	"fmt"
	"sort"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/pkg/ingredient"
	"pantry-planner/pkg/nutrition"

	"github.com/google/uuid"
)

// Week is everything derived from one pass over a plan's menu items.
type Week struct {
	Requirements []ingredient.Requirement
	Warnings     []ingredient.Warning
	Nutrition    []nutrition.Entry
}

// AggregateWeek scales every resolved recipe by item portions over recipe
// portions and sums the result. Items whose recipe is missing from recipes
// are skipped with a missing_recipe warning.
func AggregateWeek(items []entities.MenuItem, recipes map[uuid.UUID]*entities.Recipe) Week {
	week := Week{
		Requirements: []ingredient.Requirement{},
		Warnings:     []ingredient.Warning{},
		Nutrition:    []nutrition.Entry{},
	}

	var lines []ingredient.Requirement
	for _, item := range SortItems(items) {
		recipe, ok := recipes[item.RecipeID]
		if !ok || recipe == nil {
			week.Warnings = append(week.Warnings, ingredient.Warning{
				Kind:       ingredient.WarningMissingRecipe,
				MenuItemID: item.ID.String(),
				Message:    fmt.Sprintf("recipe %s of menu item %s could not be resolved", item.RecipeID, item.ID),
			})
			continue
		}

		factor := ingredient.PortionFactor(item.Portions, recipe.Portions)
		lines = append(lines, ingredient.ScaleLines(recipe.Ingredients, factor)...)

		week.Nutrition = append(week.Nutrition, nutrition.Entry{
			MenuItemID:     item.ID.String(),
			DayOfWeek:      item.DayOfWeek,
			MealType:       item.MealType,
			Portions:       item.Portions,
			RecipePortions: recipe.Portions,
			Facts:          recipe.Nutrition.Data(),
		})
	}

	week.Requirements = ingredient.Aggregate(lines)
	return week
}

// SortItems returns a copy of items ordered by day, then breakfast, lunch,
// dinner.
func SortItems(items []entities.MenuItem) []entities.MenuItem {
	sorted := make([]entities.MenuItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DayOfWeek != sorted[j].DayOfWeek {
			return sorted[i].DayOfWeek < sorted[j].DayOfWeek
		}
		return domain.MealOrder[sorted[i].MealType] < domain.MealOrder[sorted[j].MealType]
	})
	return sorted
}

// RecipeIDs lists the distinct recipes referenced by items.
func RecipeIDs(items []entities.MenuItem) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if seen[item.RecipeID] {
			continue
		}
		seen[item.RecipeID] = true
		ids = append(ids, item.RecipeID)
	}
	return ids
}
