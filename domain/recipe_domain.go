package domain

import (
	"time"

	"pantry-planner/pkg/nutrition"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessCheckStock      = "recipe availability checked successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedCheckStock      = "failed to check recipe availability"

	ErrRecipeNotFound = &StateError{Reason: ReasonRecipeNotFound, Message: "recipe not found"}
)

type (
	SaveRecipeRequest struct {
		Title       string           `json:"title" validate:"required,max=200"`
		Ingredients []string         `json:"ingredients" validate:"required,min=1,dive,required"`
		Steps       []string         `json:"steps"`
		DurationMin int              `json:"duration_min" validate:"omitempty,min=0"`
		Difficulty  string           `json:"difficulty" validate:"omitempty,max=32"`
		Category    string           `json:"category" validate:"omitempty,max=64"`
		Portions    int              `json:"portions" validate:"omitempty,min=1"`
		Nutrition   *nutrition.Facts `json:"nutrition"`
	}

	RecipeResponse struct {
		ID          string           `json:"id"`
		Title       string           `json:"title"`
		Ingredients []string         `json:"ingredients"`
		Steps       []string         `json:"steps"`
		DurationMin int              `json:"duration_min,omitempty"`
		Difficulty  string           `json:"difficulty,omitempty"`
		Category    string           `json:"category,omitempty"`
		Portions    int              `json:"portions"`
		Nutrition   *nutrition.Facts `json:"nutrition,omitempty"`
		CreatedAt   time.Time        `json:"created_at"`
	}
)
