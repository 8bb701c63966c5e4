package shopping

import (
	"testing"
	"time"

	"pantry-planner/domain"
	"pantry-planner/pkg/ingredient"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func deficits() []ingredient.Deficiency {
	return []ingredient.Deficiency{
		{Required: ingredient.Requirement{Name: "domates", Quantity: 4, Unit: ingredient.Count}, Available: 1, Missing: 3},
		{Required: ingredient.Requirement{Name: "un", Quantity: 500, Unit: ingredient.MassG}, Missing: 500},
	}
}

func TestBuild(t *testing.T) {
	userID := uuid.New()
	list := Build(userID, "", deficits(), buildTime)

	assert.Equal(t, "Shopping list 2026-03-02", list.Title)
	assert.Equal(t, userID, list.UserID)
	assert.False(t, list.Completed)
	require.Len(t, list.Items, 2)

	assert.Equal(t, "domates", list.Items[0].Name)
	assert.Equal(t, 3.0, list.Items[0].Quantity)
	assert.Equal(t, string(ingredient.Count), list.Items[0].Unit)
	assert.Equal(t, string(ingredient.CategoryProduce), list.Items[0].Category)
	assert.Equal(t, list.ID, list.Items[0].ShoppingListID)
	assert.False(t, list.Items[0].Purchased)

	assert.Equal(t, 500.0, list.Items[1].Quantity)
	assert.Equal(t, 1, list.Items[1].Position)
}

func TestBuildEmpty(t *testing.T) {
	list := Build(uuid.New(), "Boş", nil, buildTime)
	assert.Equal(t, "Boş", list.Title)
	assert.Empty(t, list.Items)
}

func TestToggleItemIsIdempotent(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)
	id := list.Items[0].ID

	item, changed, err := ToggleItem(list, id, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, item.Purchased)

	item, changed, err = ToggleItem(list, id, true)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, item.Purchased)

	_, changed, err = ToggleItem(list, id, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, list.Items[0].Purchased)
}

func TestToggleUnknownItem(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)
	_, _, err := ToggleItem(list, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrShoppingItemNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompletedListIsFrozen(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)
	require.True(t, Complete(list, buildTime))
	require.NotNil(t, list.CompletedAt)

	_, _, err := ToggleItem(list, list.Items[0].ID, true)
	assert.ErrorIs(t, err, domain.ErrShoppingListCompleted)
	assert.Equal(t, domain.ReasonListCompleted, domain.Reason(err))

	_, err = AddItem(list, ingredient.Parse("2 limon"))
	assert.ErrorIs(t, err, domain.ErrShoppingListCompleted)

	err = RemoveItem(list, list.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrShoppingListCompleted)

	_, err = SetCategory(list, list.Items[0].ID, ingredient.CategoryOther)
	assert.ErrorIs(t, err, domain.ErrShoppingListCompleted)

	assert.Len(t, list.Items, 2)
	assert.False(t, list.Items[0].Purchased)
}

func TestCompleteTwiceIsNoop(t *testing.T) {
	list := Build(uuid.New(), "", nil, buildTime)
	assert.True(t, Complete(list, buildTime))
	assert.False(t, Complete(list, buildTime.Add(time.Hour)))
	assert.Equal(t, buildTime, *list.CompletedAt)
}

func TestAddItemMergesIntoPendingItem(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)

	item, err := AddItem(list, ingredient.Requirement{Name: "Un", Quantity: 1, Unit: ingredient.MassKG})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 1500.0, item.Quantity)
	assert.Equal(t, string(ingredient.MassG), item.Unit)
}

func TestAddItemAppendsWhenIncompatible(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)
	list.Items[0].Purchased = true

	item, err := AddItem(list, ingredient.Parse("2 domates"))
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, 2, item.Position)
	assert.False(t, item.Purchased)

	_, err = AddItem(list, ingredient.Requirement{Name: "un", Quantity: 2, Unit: ingredient.Count})
	require.NoError(t, err)
	assert.Len(t, list.Items, 4)
}

func TestAddItemRejectsNonPositive(t *testing.T) {
	list := Build(uuid.New(), "", nil, buildTime)
	_, err := AddItem(list, ingredient.Requirement{Name: "tuz", Quantity: 0, Unit: ingredient.MassG})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRemoveItem(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)
	require.NoError(t, RemoveItem(list, list.Items[0].ID))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, "un", list.Items[0].Name)

	assert.ErrorIs(t, RemoveItem(list, uuid.New()), domain.ErrShoppingItemNotFound)
}

func TestSetCategory(t *testing.T) {
	list := Build(uuid.New(), "", deficits(), buildTime)

	item, err := SetCategory(list, list.Items[1].ID, ingredient.CategoryDeli)
	require.NoError(t, err)
	assert.Equal(t, string(ingredient.CategoryDeli), item.Category)

	_, err = SetCategory(list, list.Items[1].ID, ingredient.Category("snacks"))
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}
