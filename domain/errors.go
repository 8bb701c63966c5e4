package domain

import "errors"

// Reason codes carried by StateError.
const (
	ReasonListCompleted  = "list_completed"
	ReasonListNotFound   = "list_not_found"
	ReasonItemNotFound   = "item_not_found"
	ReasonInvalidPortion = "invalid_portions"
	ReasonPlanNotFound   = "menu_plan_not_found"
	ReasonMenuItemAbsent = "menu_item_not_found"
	ReasonRecipeNotFound = "recipe_not_found"
	ReasonStockNotFound  = "inventory_item_not_found"
	ReasonInvalidWeek    = "invalid_week"
	ReasonInvalidSlot    = "invalid_slot"
	ReasonInvalidUnit    = "invalid_unit"
	ReasonInvalidQty     = "invalid_quantity"
	ReasonBadCategory    = "invalid_category"
)

var (
	// ErrInvalidState matches every StateError.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound matches StateErrors that reference a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an entity belongs to another user.
	ErrForbidden = errors.New("forbidden")
)

// StateError rejects a single operation with a reason code. It never
// implies that persisted state changed.
type StateError struct {
	Reason  string
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func (e *StateError) Is(target error) bool {
	switch t := target.(type) {
	case *StateError:
		return t.Reason == e.Reason
	}
	if target == ErrInvalidState {
		return true
	}
	if target == ErrNotFound {
		switch e.Reason {
		case ReasonListNotFound, ReasonItemNotFound, ReasonPlanNotFound,
			ReasonMenuItemAbsent, ReasonRecipeNotFound, ReasonStockNotFound:
			return true
		}
	}
	return false
}

// Reason returns the reason code of the StateError in err's chain, if any.
func Reason(err error) string {
	var se *StateError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}
