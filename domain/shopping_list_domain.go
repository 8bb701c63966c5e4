package domain

import (
	"time"

	"pantry-planner/pkg/ingredient"
)

var (
	MessageSuccessCreateShoppingList = "shopping list created successfully"
	MessageSuccessGetShoppingLists   = "shopping lists retrieved successfully"
	MessageSuccessGetShoppingList    = "shopping list retrieved successfully"
	MessageSuccessToggleItem         = "shopping list item updated successfully"
	MessageSuccessAddShoppingItem    = "shopping list item added successfully"
	MessageSuccessRemoveShoppingItem = "shopping list item removed successfully"
	MessageSuccessUpdateCategory     = "shopping list item category updated successfully"
	MessageSuccessCompleteList       = "shopping list completed successfully"
	MessageSuccessDeleteList         = "shopping list deleted successfully"

	MessageFailedCreateShoppingList = "failed to create shopping list"
	MessageFailedGetShoppingLists   = "failed to retrieve shopping lists"
	MessageFailedGetShoppingList    = "failed to retrieve shopping list"
	MessageFailedToggleItem         = "failed to update shopping list item"
	MessageFailedAddShoppingItem    = "failed to add shopping list item"
	MessageFailedRemoveShoppingItem = "failed to remove shopping list item"
	MessageFailedUpdateCategory     = "failed to update shopping list item category"
	MessageFailedCompleteList       = "failed to complete shopping list"
	MessageFailedDeleteList         = "failed to delete shopping list"
	MessageFailedExportList         = "failed to export shopping list"

	ErrShoppingListNotFound  = &StateError{Reason: ReasonListNotFound, Message: "shopping list not found"}
	ErrShoppingItemNotFound  = &StateError{Reason: ReasonItemNotFound, Message: "shopping list item not found"}
	ErrShoppingListCompleted = &StateError{Reason: ReasonListCompleted, Message: "shopping list is completed"}
	ErrInvalidCategory       = &StateError{Reason: ReasonBadCategory, Message: "unknown ingredient category"}
)

type (
	CreateShoppingListRequest struct {
		Title           string   `json:"title" validate:"omitempty,max=200"`
		IngredientLines []string `json:"ingredient_lines" validate:"required,min=1,dive,required"`
	}

	// ToggleItemRequest flips the item when Purchased is omitted.
	ToggleItemRequest struct {
		Purchased *bool `json:"purchased"`
	}

	// AddShoppingItemRequest takes either a free-text Line or a structured
	// name/quantity/unit triple.
	AddShoppingItemRequest struct {
		Line     string  `json:"line" validate:"required_without=Name"`
		Name     string  `json:"name" validate:"required_without=Line,max=120"`
		Quantity float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit     string  `json:"unit" validate:"omitempty,max=32"`
	}

	UpdateItemCategoryRequest struct {
		Category string `json:"category" validate:"required"`
	}

	ShoppingListItemResponse struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Quantity  float64 `json:"quantity"`
		Unit      string  `json:"unit"`
		UnitLabel string  `json:"unit_label"`
		Category  string  `json:"category"`
		Purchased bool    `json:"purchased"`
	}

	ShoppingListResponse struct {
		ID             string                     `json:"id"`
		Title          string                     `json:"title"`
		MenuPlanID     string                     `json:"menu_plan_id,omitempty"`
		Completed      bool                       `json:"completed"`
		CompletedAt    *time.Time                 `json:"completed_at,omitempty"`
		CreatedAt      time.Time                  `json:"created_at"`
		PurchasedCount int                        `json:"purchased_count"`
		TotalCount     int                        `json:"total_count"`
		Items          []ShoppingListItemResponse `json:"items"`
	}

	// ShoppingListResult is a freshly built list with the reconciliation it
	// was built from.
	ShoppingListResult struct {
		ShoppingList ShoppingListResponse     `json:"shopping_list"`
		Sufficient   []ingredient.Requirement `json:"sufficient"`
		Deficient    []ingredient.Deficiency  `json:"deficient"`
		Warnings     []ingredient.Warning     `json:"warnings"`
	}

	CategoryGroup struct {
		Category      string                     `json:"category"`
		CategoryLabel string                     `json:"category_label"`
		Items         []ShoppingListItemResponse `json:"items"`
		Total         int                        `json:"total"`
	}

	CategorizedShoppingListResponse struct {
		ListID     string          `json:"list_id"`
		Title      string          `json:"title"`
		Categories []CategoryGroup `json:"categories"`
		TotalItems int             `json:"total_items"`
	}
)
