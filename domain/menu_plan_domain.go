package domain

import (
	"time"

	"pantry-planner/pkg/ingredient"
	"pantry-planner/pkg/nutrition"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"

	DateLayout = "2006-01-02"
)

var MealOrder = map[string]int{
	MealBreakfast: 0,
	MealLunch:     1,
	MealDinner:    2,
}

var (
	MessageSuccessCreateMenuPlan = "menu plan created successfully"
	MessageSuccessGetMenuPlans   = "menu plans retrieved successfully"
	MessageSuccessGetMenuPlan    = "menu plan retrieved successfully"
	MessageSuccessUpdateMenuPlan = "menu plan updated successfully"
	MessageSuccessDeleteMenuPlan = "menu plan deleted successfully"
	MessageSuccessAddMenuItem    = "menu item saved successfully"
	MessageSuccessUpdateMenuItem = "menu item updated successfully"
	MessageSuccessDeleteMenuItem = "menu item deleted successfully"
	MessageSuccessToggleMenuItem = "menu item completion updated successfully"
	MessageSuccessMenuShopping   = "menu shopping list retrieved successfully"
	MessageSuccessMenuNutrition  = "menu nutrition retrieved successfully"
	MessageFailedCreateMenuPlan  = "failed to create menu plan"
	MessageFailedGetMenuPlans    = "failed to retrieve menu plans"
	MessageFailedGetMenuPlan     = "failed to retrieve menu plan"
	MessageFailedUpdateMenuPlan  = "failed to update menu plan"
	MessageFailedDeleteMenuPlan  = "failed to delete menu plan"
	MessageFailedAddMenuItem     = "failed to save menu item"
	MessageFailedUpdateMenuItem  = "failed to update menu item"
	MessageFailedDeleteMenuItem  = "failed to delete menu item"
	MessageFailedToggleMenuItem  = "failed to update menu item completion"
	MessageFailedMenuShopping    = "failed to build menu shopping list"
	MessageFailedMenuNutrition   = "failed to compute menu nutrition"
	MessageNoActiveMenuPlan      = "no active menu plan"

	ErrMenuPlanNotFound = &StateError{Reason: ReasonPlanNotFound, Message: "menu plan not found"}
	ErrMenuItemNotFound = &StateError{Reason: ReasonMenuItemAbsent, Message: "menu item not found"}
	ErrInvalidPortions  = &StateError{Reason: ReasonInvalidPortion, Message: "portions must be greater than zero"}
	ErrInvalidWeek      = &StateError{Reason: ReasonInvalidWeek, Message: "a menu week must span exactly 7 days"}
	ErrInvalidSlot      = &StateError{Reason: ReasonInvalidSlot, Message: "day of week must be 0..6 and meal type breakfast, lunch or dinner"}
)

type (
	CreateMenuPlanRequest struct {
		Name          string `json:"name" validate:"omitempty,max=120"`
		WeekStartDate string `json:"week_start_date" validate:"required,datetime=2006-01-02"`
		WeekEndDate   string `json:"week_end_date" validate:"omitempty,datetime=2006-01-02"`
		IsActive      bool   `json:"is_active"`
		Notes         string `json:"notes" validate:"omitempty,max=1000"`
	}

	UpdateMenuPlanRequest struct {
		Name     *string `json:"name" validate:"omitempty,max=120"`
		IsActive *bool   `json:"is_active"`
		Notes    *string `json:"notes" validate:"omitempty,max=1000"`
	}

	MenuItemRequest struct {
		DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
		MealType  string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
		RecipeID  string `json:"recipe_id" validate:"required,uuid"`
		// Portions defaults to 1 when omitted.
		Portions *int   `json:"portions"`
		Notes    string `json:"notes" validate:"omitempty,max=500"`
	}

	UpdateMenuItemRequest struct {
		RecipeID *string `json:"recipe_id" validate:"omitempty,uuid"`
		Portions *int    `json:"portions"`
		Notes    *string `json:"notes" validate:"omitempty,max=500"`
	}

	MenuItemResponse struct {
		ID          string     `json:"id"`
		DayOfWeek   int        `json:"day_of_week"`
		MealType    string     `json:"meal_type"`
		RecipeID    string     `json:"recipe_id"`
		Portions    int        `json:"portions"`
		Notes       string     `json:"notes,omitempty"`
		IsCompleted bool       `json:"is_completed"`
		CompletedAt *time.Time `json:"completed_at,omitempty"`
	}

	MenuPlanResponse struct {
		ID            string             `json:"id"`
		Name          string             `json:"name"`
		WeekStartDate string             `json:"week_start_date"`
		WeekEndDate   string             `json:"week_end_date"`
		IsActive      bool               `json:"is_active"`
		Notes         string             `json:"notes,omitempty"`
		Items         []MenuItemResponse `json:"items"`
		CreatedAt     time.Time          `json:"created_at"`
	}

	MenuShoppingListResponse struct {
		ShoppingList ShoppingListResponse     `json:"shopping_list"`
		Regenerated  bool                     `json:"regenerated"`
		Requirements []ingredient.Requirement `json:"requirements,omitempty"`
		Sufficient   []ingredient.Requirement `json:"sufficient,omitempty"`
		Deficient    []ingredient.Deficiency  `json:"deficient,omitempty"`
		Warnings     []ingredient.Warning     `json:"warnings"`
	}

	MenuNutritionResponse struct {
		MenuPlanID string               `json:"menu_plan_id"`
		Summary    nutrition.Summary    `json:"summary"`
		Warnings   []ingredient.Warning `json:"warnings"`
	}
)
