package shopping

import (
	"time"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/pkg/ingredient"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func DefaultTitle(now time.Time) string {
	return "Shopping list " + now.Format("2006-01-02")
}

// Build creates an open list with one pending item per deficiency, for the
// missing amount. Nothing is persisted.
func Build(userID uuid.UUID, title string, deficits []ingredient.Deficiency, now time.Time) *entities.ShoppingList {
	if title == "" {
		title = DefaultTitle(now)
	}

	list := &entities.ShoppingList{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Items:  make([]entities.ShoppingListItem, 0, len(deficits)),
	}
	for i, d := range deficits {
		list.Items = append(list.Items, entities.ShoppingListItem{
			ID:             uuid.New(),
			ShoppingListID: list.ID,
			Name:           d.Required.Name,
			Quantity:       d.Missing,
			Unit:           string(d.Required.Unit),
			Category:       string(ingredient.Categorize(d.Required.Name)),
			Position:       i,
		})
	}
	return list
}

// ToggleItem sets the purchased flag of an item. Setting the value it
// already has reports changed == false and no error.
func ToggleItem(list *entities.ShoppingList, itemID uuid.UUID, purchased bool) (*entities.ShoppingListItem, bool, error) {
	if list.Completed {
		return nil, false, domain.ErrShoppingListCompleted
	}
	item := findItem(list, itemID)
	if item == nil {
		return nil, false, domain.ErrShoppingItemNotFound
	}
	if item.Purchased == purchased {
		return item, false, nil
	}
	item.Purchased = purchased
	return item, true, nil
}

// AddItem adds req to an open list. A pending item with the same name and
// a compatible unit absorbs the quantity; otherwise a new item is appended.
func AddItem(list *entities.ShoppingList, req ingredient.Requirement) (*entities.ShoppingListItem, error) {
	if list.Completed {
		return nil, domain.ErrShoppingListCompleted
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	req.Name = ingredient.NormalizeName(req.Name)

	for i := range list.Items {
		item := &list.Items[i]
		if item.Purchased || item.Name != req.Name {
			continue
		}
		q, ok := ingredient.Convert(req.Quantity, req.Unit, ingredient.Unit(item.Unit))
		if !ok {
			continue
		}
		item.Quantity = decimal.NewFromFloat(item.Quantity).Add(decimal.NewFromFloat(q)).InexactFloat64()
		return item, nil
	}

	list.Items = append(list.Items, entities.ShoppingListItem{
		ID:             uuid.New(),
		ShoppingListID: list.ID,
		Name:           req.Name,
		Quantity:       req.Quantity,
		Unit:           string(req.Unit),
		Category:       string(ingredient.Categorize(req.Name)),
		Position:       nextPosition(list),
	})
	return &list.Items[len(list.Items)-1], nil
}

func RemoveItem(list *entities.ShoppingList, itemID uuid.UUID) error {
	if list.Completed {
		return domain.ErrShoppingListCompleted
	}
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			list.Items = append(list.Items[:i], list.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrShoppingItemNotFound
}

func SetCategory(list *entities.ShoppingList, itemID uuid.UUID, category ingredient.Category) (*entities.ShoppingListItem, error) {
	if list.Completed {
		return nil, domain.ErrShoppingListCompleted
	}
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	item := findItem(list, itemID)
	if item == nil {
		return nil, domain.ErrShoppingItemNotFound
	}
	item.Category = string(category)
	return item, nil
}

// Complete freezes the list. Completing an already completed list changes
// nothing and reports changed == false.
func Complete(list *entities.ShoppingList, now time.Time) bool {
	if list.Completed {
		return false
	}
	list.Completed = true
	list.CompletedAt = &now
	return true
}

func findItem(list *entities.ShoppingList, itemID uuid.UUID) *entities.ShoppingListItem {
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			return &list.Items[i]
		}
	}
	return nil
}

func nextPosition(list *entities.ShoppingList) int {
	next := 0
	for _, item := range list.Items {
		if item.Position >= next {
			next = item.Position + 1
		}
	}
	return next
}
