package menu

import (
	"context"
	"errors"
	"testing"

	"pantry-planner/domain"
	"pantry-planner/internal/testutil"
	"pantry-planner/internal/utils/locker"
	"pantry-planner/pkg/ingredient"
	"pantry-planner/pkg/inventory"
	"pantry-planner/pkg/nutrition"
	"pantry-planner/pkg/recipe"
	"pantry-planner/pkg/shopping"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MenuServiceSuite struct {
	suite.Suite
	ctx       context.Context
	db        *gorm.DB
	userID    string
	inventory inventory.InventoryService
	recipes   recipe.RecipeService
	shopping  shopping.ShoppingService
	service   MenuService
}

func (s *MenuServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = uuid.NewString()

	db := testutil.NewDB(s.T())
	s.db = db
	l := locker.NewMemoryLocker()
	log := zap.NewNop()

	s.inventory = inventory.NewInventoryService(inventory.NewInventoryRepository(db), l, log, nil)
	s.recipes = recipe.NewRecipeService(recipe.NewRecipeRepository(db), s.inventory)
	s.shopping = shopping.NewShoppingService(shopping.NewShoppingRepository(db), s.inventory, l, log, nil)
	s.service = NewMenuService(NewMenuRepository(db), s.recipes, s.inventory, s.shopping, l, log, nil)
}

func (s *MenuServiceSuite) plan(active bool) domain.MenuPlanResponse {
	res, err := s.service.CreateMenuPlan(s.ctx, domain.CreateMenuPlanRequest{
		Name:          "Hafta",
		WeekStartDate: "2026-03-02",
		IsActive:      active,
	}, s.userID)
	s.Require().NoError(err)
	return res
}

func (s *MenuServiceSuite) recipe(portions int, facts *nutrition.Facts, lines ...string) string {
	res, err := s.recipes.SaveRecipe(s.ctx, domain.SaveRecipeRequest{
		Title:       "tarif",
		Ingredients: lines,
		Portions:    portions,
		Nutrition:   facts,
	}, s.userID)
	s.Require().NoError(err)
	return res.ID
}

func (s *MenuServiceSuite) assign(planID string, day int, meal, recipeID string, portions int) domain.MenuItemResponse {
	res, err := s.service.SaveMenuItem(s.ctx, planID, domain.MenuItemRequest{
		DayOfWeek: &day,
		MealType:  meal,
		RecipeID:  recipeID,
		Portions:  &portions,
	}, s.userID)
	s.Require().NoError(err)
	return res
}

func (s *MenuServiceSuite) TestCreatePlanDefaultsToSevenDays() {
	p := s.plan(false)
	s.Equal("2026-03-02", p.WeekStartDate)
	s.Equal("2026-03-08", p.WeekEndDate)
	s.Empty(p.Items)
}

func (s *MenuServiceSuite) TestCreatePlanRejectsBadWeek() {
	_, err := s.service.CreateMenuPlan(s.ctx, domain.CreateMenuPlanRequest{
		WeekStartDate: "2026-03-02",
		WeekEndDate:   "2026-03-05",
	}, s.userID)
	s.ErrorIs(err, domain.ErrInvalidWeek)
}

func (s *MenuServiceSuite) TestActivationIsExclusive() {
	first := s.plan(true)
	second := s.plan(true)

	active, err := s.service.GetActiveMenuPlan(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(second.ID, active.ID)

	on := true
	_, err = s.service.UpdateMenuPlan(s.ctx, first.ID, domain.UpdateMenuPlanRequest{IsActive: &on}, s.userID)
	s.Require().NoError(err)

	got, err := s.service.GetMenuPlan(s.ctx, second.ID, s.userID)
	s.Require().NoError(err)
	s.False(got.IsActive)

	active, err = s.service.GetActiveMenuPlan(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(first.ID, active.ID)
}

func (s *MenuServiceSuite) TestNoActivePlan() {
	s.plan(false)
	_, err := s.service.GetActiveMenuPlan(s.ctx, s.userID)
	s.ErrorIs(err, domain.ErrMenuPlanNotFound)
}

func (s *MenuServiceSuite) TestSlotAssignmentReplaces() {
	p := s.plan(false)
	a := s.recipe(4, nil, "domates: 4 adet")
	b := s.recipe(4, nil, "un: 200 gr")

	s.assign(p.ID, 2, domain.MealLunch, a, 2)
	replaced := s.assign(p.ID, 2, domain.MealLunch, b, 3)
	s.assign(p.ID, 2, domain.MealBreakfast, a, 1)

	got, err := s.service.GetMenuPlan(s.ctx, p.ID, s.userID)
	s.Require().NoError(err)
	s.Require().Len(got.Items, 2)
	s.Equal(domain.MealBreakfast, got.Items[0].MealType)
	s.Equal(replaced.ID, got.Items[1].ID)
	s.Equal(b, got.Items[1].RecipeID)
	s.Equal(3, got.Items[1].Portions)
}

func (s *MenuServiceSuite) TestPortionsMustBePositive() {
	p := s.plan(false)
	r := s.recipe(4, nil, "domates: 4 adet")
	day, zero := 0, 0

	_, err := s.service.SaveMenuItem(s.ctx, p.ID, domain.MenuItemRequest{
		DayOfWeek: &day, MealType: domain.MealDinner, RecipeID: r, Portions: &zero,
	}, s.userID)
	s.ErrorIs(err, domain.ErrInvalidPortions)
	s.Equal(domain.ReasonInvalidPortion, domain.Reason(err))

	item, err := s.service.SaveMenuItem(s.ctx, p.ID, domain.MenuItemRequest{
		DayOfWeek: &day, MealType: domain.MealDinner, RecipeID: r,
	}, s.userID)
	s.Require().NoError(err)
	s.Equal(1, item.Portions)

	negative := -2
	_, err = s.service.UpdateMenuItem(s.ctx, p.ID, item.ID, domain.UpdateMenuItemRequest{Portions: &negative}, s.userID)
	s.ErrorIs(err, domain.ErrInvalidPortions)
}

func (s *MenuServiceSuite) TestSaveMenuItemUnknownRecipe() {
	p := s.plan(false)
	day, portions := 0, 2
	_, err := s.service.SaveMenuItem(s.ctx, p.ID, domain.MenuItemRequest{
		DayOfWeek: &day, MealType: domain.MealDinner, RecipeID: uuid.NewString(), Portions: &portions,
	}, s.userID)
	s.ErrorIs(err, domain.ErrRecipeNotFound)
}

func (s *MenuServiceSuite) TestUpdateToggleDeleteItem() {
	p := s.plan(false)
	r := s.recipe(4, nil, "domates: 4 adet")
	item := s.assign(p.ID, 4, domain.MealDinner, r, 2)

	notes := "az tuzlu"
	updated, err := s.service.UpdateMenuItem(s.ctx, p.ID, item.ID, domain.UpdateMenuItemRequest{Notes: &notes}, s.userID)
	s.Require().NoError(err)
	s.Equal(notes, updated.Notes)
	s.Equal(2, updated.Portions)

	toggled, err := s.service.ToggleMenuItem(s.ctx, p.ID, item.ID, s.userID)
	s.Require().NoError(err)
	s.True(toggled.IsCompleted)
	s.NotNil(toggled.CompletedAt)

	toggled, err = s.service.ToggleMenuItem(s.ctx, p.ID, item.ID, s.userID)
	s.Require().NoError(err)
	s.False(toggled.IsCompleted)
	s.Nil(toggled.CompletedAt)

	s.Require().NoError(s.service.DeleteMenuItem(s.ctx, p.ID, item.ID, s.userID))
	err = s.service.DeleteMenuItem(s.ctx, p.ID, item.ID, s.userID)
	s.ErrorIs(err, domain.ErrMenuItemNotFound)
}

func (s *MenuServiceSuite) TestForeignOwner() {
	p := s.plan(false)

	_, err := s.service.GetMenuPlan(s.ctx, p.ID, uuid.NewString())
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.service.GetShoppingList(s.ctx, p.ID, true, uuid.NewString())
	s.ErrorIs(err, domain.ErrForbidden)

	err = s.service.DeleteMenuPlan(s.ctx, p.ID, uuid.NewString())
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *MenuServiceSuite) TestShoppingListIsReusedUntilRegenerated() {
	p := s.plan(false)
	r := s.recipe(4, nil, "domates: 4 adet", "un: 200 gr")
	s.assign(p.ID, 0, domain.MealDinner, r, 4)

	first, err := s.service.GetShoppingList(s.ctx, p.ID, false, s.userID)
	s.Require().NoError(err)
	s.True(first.Regenerated)
	s.Len(first.ShoppingList.Items, 2)

	again, err := s.service.GetShoppingList(s.ctx, p.ID, false, s.userID)
	s.Require().NoError(err)
	s.False(again.Regenerated)
	s.Equal(first.ShoppingList.ID, again.ShoppingList.ID)
}

func (s *MenuServiceSuite) TestRegenerateReflectsPantryEdits() {
	p := s.plan(false)
	r := s.recipe(4, nil, "domates: 4 adet", "un: 200 gr")
	s.assign(p.ID, 0, domain.MealDinner, r, 4)

	before, err := s.service.GetShoppingList(s.ctx, p.ID, true, s.userID)
	s.Require().NoError(err)
	s.Require().Len(before.ShoppingList.Items, 2)

	_, err = s.inventory.AddItem(s.ctx, domain.AddInventoryItemRequest{Name: "un", Quantity: 1, Unit: "kg"}, s.userID)
	s.Require().NoError(err)
	s.assign(p.ID, 1, domain.MealLunch, s.recipe(2, nil, "süt: 1 lt"), 2)

	after, err := s.service.GetShoppingList(s.ctx, p.ID, true, s.userID)
	s.Require().NoError(err)
	s.True(after.Regenerated)
	s.NotEqual(before.ShoppingList.ID, after.ShoppingList.ID)

	names := make([]string, 0, len(after.ShoppingList.Items))
	for _, item := range after.ShoppingList.Items {
		names = append(names, item.Name)
	}
	s.Equal([]string{"domates", "süt"}, names)
	s.Require().Len(after.Sufficient, 1)
	s.Equal("un", after.Sufficient[0].Name)

	_, err = s.shopping.GetShoppingList(s.ctx, before.ShoppingList.ID, s.userID)
	s.ErrorIs(err, domain.ErrShoppingListNotFound)

	again, err := s.service.GetShoppingList(s.ctx, p.ID, true, s.userID)
	s.Require().NoError(err)
	s.Equal(len(after.ShoppingList.Items), len(again.ShoppingList.Items))
}

func (s *MenuServiceSuite) TestMissingRecipeIsAWarning() {
	p := s.plan(false)
	kept := s.recipe(4, nil, "domates: 4 adet")
	gone := s.recipe(4, nil, "un: 500 gr")
	s.assign(p.ID, 0, domain.MealDinner, kept, 4)
	lost := s.assign(p.ID, 1, domain.MealDinner, gone, 4)
	s.Require().NoError(s.recipes.DeleteRecipe(s.ctx, gone, s.userID))

	res, err := s.service.GetShoppingList(s.ctx, p.ID, true, s.userID)
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Equal(ingredient.WarningMissingRecipe, res.Warnings[0].Kind)
	s.Equal(lost.ID, res.Warnings[0].MenuItemID)
	s.Require().Len(res.ShoppingList.Items, 1)
	s.Equal("domates", res.ShoppingList.Items[0].Name)
}

func (s *MenuServiceSuite) TestNutrition() {
	p := s.plan(false)
	r := s.recipe(4, &nutrition.Facts{Calories: 2000, ProteinG: 100, CarbsG: 200, FatG: 80}, "domates: 4 adet")
	plain := s.recipe(4, nil, "un: 100 gr")
	s.assign(p.ID, 0, domain.MealLunch, r, 2)
	s.assign(p.ID, 0, domain.MealDinner, r, 1)
	s.assign(p.ID, 6, domain.MealDinner, plain, 1)

	res, err := s.service.GetNutrition(s.ctx, p.ID, s.userID)
	s.Require().NoError(err)
	s.Empty(res.Warnings)
	s.Require().Len(res.Summary.Days, nutrition.DaysPerWeek)
	s.Equal(1500.0, res.Summary.Days[0].Total.Calories)
	s.Equal(75.0, res.Summary.Days[0].DailyValue.Calories)
	s.Equal(nutrition.Facts{}, res.Summary.Days[3].Total)
	s.Equal(1, res.Summary.MissingNutrition)
	s.Equal(1500.0, res.Summary.WeekTotal.Calories)
}

func (s *MenuServiceSuite) TestDeletePlanRemovesGeneratedList() {
	p := s.plan(false)
	r := s.recipe(4, nil, "domates: 4 adet")
	s.assign(p.ID, 0, domain.MealDinner, r, 4)

	res, err := s.service.GetShoppingList(s.ctx, p.ID, false, s.userID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteMenuPlan(s.ctx, p.ID, s.userID))

	_, err = s.service.GetMenuPlan(s.ctx, p.ID, s.userID)
	s.ErrorIs(err, domain.ErrMenuPlanNotFound)
	_, err = s.shopping.GetShoppingList(s.ctx, res.ShoppingList.ID, s.userID)
	s.ErrorIs(err, domain.ErrShoppingListNotFound)
}

func (s *MenuServiceSuite) TestFailedPlanDeleteKeepsGeneratedList() {
	p := s.plan(false)
	r := s.recipe(4, nil, "domates: 4 adet")
	s.assign(p.ID, 0, domain.MealDinner, r, 4)

	res, err := s.service.GetShoppingList(s.ctx, p.ID, false, s.userID)
	s.Require().NoError(err)

	errDelete := errors.New("menu plan delete failed")
	s.Require().NoError(s.db.Callback().Delete().Before("gorm:delete").Register("fail_menu_plan_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "menu_plans" {
			_ = tx.AddError(errDelete)
		}
	}))

	err = s.service.DeleteMenuPlan(s.ctx, p.ID, s.userID)
	s.ErrorIs(err, errDelete)

	_, err = s.service.GetMenuPlan(s.ctx, p.ID, s.userID)
	s.NoError(err)
	list, err := s.shopping.GetShoppingList(s.ctx, res.ShoppingList.ID, s.userID)
	s.Require().NoError(err)
	s.Len(list.Items, 1)
}

func TestMenuServiceSuite(t *testing.T) {
	suite.Run(t, new(MenuServiceSuite))
}
