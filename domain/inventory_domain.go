package domain

import (
	"time"
)

var (
	MessageSuccessAddInventoryItem    = "inventory item added successfully"
	MessageSuccessUpdateInventoryItem = "inventory item updated successfully"
	MessageSuccessDeleteInventoryItem = "inventory item deleted successfully"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"
	MessageSuccessGetInventoryItem    = "inventory item retrieved successfully"

	MessageFailedAddInventoryItem    = "failed to add inventory item"
	MessageFailedUpdateInventoryItem = "failed to update inventory item"
	MessageFailedDeleteInventoryItem = "failed to delete inventory item"
	MessageFailedGetInventoryItems   = "failed to retrieve inventory items"
	MessageFailedGetInventoryItem    = "failed to retrieve inventory item"

	ErrInventoryItemNotFound = &StateError{Reason: ReasonStockNotFound, Message: "inventory item not found"}
	ErrInvalidQuantity       = &StateError{Reason: ReasonInvalidQty, Message: "quantity must be positive"}
)

type (
	AddInventoryItemRequest struct {
		Name     string  `json:"name" validate:"required,max=120"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required,max=32"`
	}

	UpdateInventoryItemRequest struct {
		Name     string  `json:"name" validate:"omitempty,max=120"`
		Quantity float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit     string  `json:"unit" validate:"omitempty,max=32"`
	}

	InventoryItemResponse struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Quantity    float64   `json:"quantity"`
		Unit        string    `json:"unit"`
		UnitLabel   string    `json:"unit_label"`
		Category    string    `json:"category"`
		Merged      bool      `json:"merged,omitempty"`
		LastUpdated time.Time `json:"last_updated"`
	}
)
