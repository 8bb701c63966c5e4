package menu

import (
	"context"
	"errors"
	"time"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/internal/utils/locker"
	"pantry-planner/pkg/ingredient"
	"pantry-planner/pkg/metrics"
	"pantry-planner/pkg/nutrition"
	"pantry-planner/pkg/shopping"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const weekLength = 6 * 24 * time.Hour

type (
	MenuService interface {
		CreateMenuPlan(ctx context.Context, req domain.CreateMenuPlanRequest, userID string) (domain.MenuPlanResponse, error)
		GetMenuPlans(ctx context.Context, userID string, page, limit int) ([]domain.MenuPlanResponse, int64, error)
		GetActiveMenuPlan(ctx context.Context, userID string) (domain.MenuPlanResponse, error)
		GetMenuPlan(ctx context.Context, planID string, userID string) (domain.MenuPlanResponse, error)
		UpdateMenuPlan(ctx context.Context, planID string, req domain.UpdateMenuPlanRequest, userID string) (domain.MenuPlanResponse, error)
		DeleteMenuPlan(ctx context.Context, planID string, userID string) error

		SaveMenuItem(ctx context.Context, planID string, req domain.MenuItemRequest, userID string) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, planID, itemID string, req domain.UpdateMenuItemRequest, userID string) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, planID, itemID string, userID string) error
		ToggleMenuItem(ctx context.Context, planID, itemID string, userID string) (domain.MenuItemResponse, error)

		GetShoppingList(ctx context.Context, planID string, regenerate bool, userID string) (domain.MenuShoppingListResponse, error)
		GetNutrition(ctx context.Context, planID string, userID string) (domain.MenuNutritionResponse, error)
	}

	RecipeResolver interface {
		ResolveRecipes(ctx context.Context, userID string, ids []uuid.UUID) (map[uuid.UUID]*entities.Recipe, error)
	}

	StockProvider interface {
		Stock(ctx context.Context, userID string) ([]ingredient.Requirement, error)
	}

	// ShoppingLists stores the list generated for a plan.
	ShoppingLists interface {
		MenuPlanList(ctx context.Context, menuPlanID uuid.UUID) (*entities.ShoppingList, error)
		ReplaceMenuPlanList(ctx context.Context, userID, menuPlanID uuid.UUID, title string, deficits []ingredient.Deficiency) (*entities.ShoppingList, error)
		LockMenuPlanList(ctx context.Context, menuPlanID uuid.UUID) (func(), error)
	}

	menuService struct {
		menuRepository MenuRepository
		recipes        RecipeResolver
		stock          StockProvider
		lists          ShoppingLists
		locker         locker.Locker
		log            *zap.Logger
		metrics        *metrics.Metrics
		now            func() time.Time
	}
)

func NewMenuService(menuRepository MenuRepository, recipes RecipeResolver, stock StockProvider, lists ShoppingLists, l locker.Locker, log *zap.Logger, m *metrics.Metrics) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		recipes:        recipes,
		stock:          stock,
		lists:          lists,
		locker:         l,
		log:            log,
		metrics:        m,
		now:            time.Now,
	}
}

func (s *menuService) CreateMenuPlan(ctx context.Context, req domain.CreateMenuPlanRequest, userID string) (domain.MenuPlanResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MenuPlanResponse{}, domain.ErrParseUUID
	}

	start, end, err := parseWeek(req.WeekStartDate, req.WeekEndDate)
	if err != nil {
		return domain.MenuPlanResponse{}, err
	}

	name := req.Name
	if name == "" {
		name = "Menu " + start.Format(domain.DateLayout)
	}
	plan := &entities.MenuPlan{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          name,
		WeekStartDate: start,
		WeekEndDate:   end,
		IsActive:      req.IsActive,
		Notes:         req.Notes,
	}

	if plan.IsActive {
		unlock, err := s.locker.Lock(ctx, locker.MenuOwnerKey(userID))
		if err != nil {
			return domain.MenuPlanResponse{}, err
		}
		defer unlock()
	}

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		if plan.IsActive {
			if err := repo.DeactivatePlans(ctx, userID, ""); err != nil {
				return err
			}
		}
		return repo.CreatePlan(ctx, plan)
	})
	if err != nil {
		s.log.Error("create menu plan", zap.String("user_id", userID), zap.Error(err))
		return domain.MenuPlanResponse{}, err
	}

	s.metrics.Mutated("menu_plan", "create")
	return toPlanResponse(plan), nil
}

func (s *menuService) GetMenuPlans(ctx context.Context, userID string, page, limit int) ([]domain.MenuPlanResponse, int64, error) {
	plans, count, err := s.menuRepository.GetPlans(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.MenuPlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}
	return res, count, nil
}

func (s *menuService) GetActiveMenuPlan(ctx context.Context, userID string) (domain.MenuPlanResponse, error) {
	plan, err := s.menuRepository.GetActivePlan(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MenuPlanResponse{}, domain.ErrMenuPlanNotFound
		}
		return domain.MenuPlanResponse{}, err
	}
	return toPlanResponse(plan), nil
}

func (s *menuService) GetMenuPlan(ctx context.Context, planID string, userID string) (domain.MenuPlanResponse, error) {
	plan, err := s.ownedPlan(ctx, s.menuRepository, planID, userID)
	if err != nil {
		return domain.MenuPlanResponse{}, err
	}
	return toPlanResponse(plan), nil
}

func (s *menuService) UpdateMenuPlan(ctx context.Context, planID string, req domain.UpdateMenuPlanRequest, userID string) (domain.MenuPlanResponse, error) {
	if req.IsActive != nil && *req.IsActive {
		unlock, err := s.locker.Lock(ctx, locker.MenuOwnerKey(userID))
		if err != nil {
			return domain.MenuPlanResponse{}, err
		}
		defer unlock()
	}

	var plan *entities.MenuPlan
	err := s.mutate(ctx, planID, userID, "update", func(repo MenuRepository, p *entities.MenuPlan) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Notes != nil {
			p.Notes = *req.Notes
		}
		if req.IsActive != nil {
			if *req.IsActive && !p.IsActive {
				if err := repo.DeactivatePlans(ctx, userID, p.ID.String()); err != nil {
					return err
				}
			}
			p.IsActive = *req.IsActive
		}
		plan = p
		return repo.UpdatePlan(ctx, p)
	})
	if err != nil {
		return domain.MenuPlanResponse{}, err
	}
	return toPlanResponse(plan), nil
}

// DeleteMenuPlan removes the plan, its items and the list generated for it.
func (s *menuService) DeleteMenuPlan(ctx context.Context, planID string, userID string) error {
	if _, err := uuid.Parse(planID); err != nil {
		return domain.ErrMenuPlanNotFound
	}

	unlock, err := s.locker.Lock(ctx, locker.MenuPlanKey(planID))
	if err != nil {
		return err
	}
	defer unlock()

	plan, err := s.ownedPlan(ctx, s.menuRepository, planID, userID)
	if err != nil {
		return err
	}
	unlockList, err := s.lists.LockMenuPlanList(ctx, plan.ID)
	if err != nil {
		return err
	}
	defer unlockList()

	if err := s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		return repo.DeletePlan(ctx, planID)
	}); err != nil {
		s.log.Error("delete menu plan", zap.String("menu_plan_id", planID), zap.Error(err))
		return err
	}

	s.metrics.Mutated("menu_plan", "delete")
	return nil
}

// SaveMenuItem assigns a recipe to a slot. A recipe already in that slot is
// replaced.
func (s *menuService) SaveMenuItem(ctx context.Context, planID string, req domain.MenuItemRequest, userID string) (domain.MenuItemResponse, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek >= nutrition.DaysPerWeek {
		return domain.MenuItemResponse{}, domain.ErrInvalidSlot
	}
	if _, ok := domain.MealOrder[req.MealType]; !ok {
		return domain.MenuItemResponse{}, domain.ErrInvalidSlot
	}
	portions := 1
	if req.Portions != nil {
		portions = *req.Portions
	}
	if portions <= 0 {
		s.metrics.Rejected(domain.ReasonInvalidPortion)
		return domain.MenuItemResponse{}, domain.ErrInvalidPortions
	}
	recipeID, err := s.resolveRecipe(ctx, req.RecipeID, userID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	var item *entities.MenuItem
	err = s.mutate(ctx, planID, userID, "save_item", func(repo MenuRepository, p *entities.MenuPlan) error {
		old, err := repo.GetItemBySlot(ctx, p.ID.String(), *req.DayOfWeek, req.MealType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if old != nil {
			if err := repo.DeleteItem(ctx, old.ID.String()); err != nil {
				return err
			}
		}

		item = &entities.MenuItem{
			ID:         uuid.New(),
			MenuPlanID: p.ID,
			DayOfWeek:  *req.DayOfWeek,
			MealType:   req.MealType,
			RecipeID:   recipeID,
			Portions:   portions,
			Notes:      req.Notes,
		}
		return repo.CreateItem(ctx, item)
	})
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, planID, itemID string, req domain.UpdateMenuItemRequest, userID string) (domain.MenuItemResponse, error) {
	if req.Portions != nil && *req.Portions <= 0 {
		s.metrics.Rejected(domain.ReasonInvalidPortion)
		return domain.MenuItemResponse{}, domain.ErrInvalidPortions
	}
	var recipeID uuid.UUID
	if req.RecipeID != nil {
		id, err := s.resolveRecipe(ctx, *req.RecipeID, userID)
		if err != nil {
			return domain.MenuItemResponse{}, err
		}
		recipeID = id
	}

	var item *entities.MenuItem
	err := s.mutateItem(ctx, planID, itemID, userID, "update_item", func(repo MenuRepository, it *entities.MenuItem) error {
		if req.RecipeID != nil {
			it.RecipeID = recipeID
		}
		if req.Portions != nil {
			it.Portions = *req.Portions
		}
		if req.Notes != nil {
			it.Notes = *req.Notes
		}
		item = it
		return repo.SaveItem(ctx, it)
	})
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toItemResponse(item), nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, planID, itemID string, userID string) error {
	return s.mutateItem(ctx, planID, itemID, userID, "delete_item", func(repo MenuRepository, it *entities.MenuItem) error {
		return repo.DeleteItem(ctx, it.ID.String())
	})
}

func (s *menuService) ToggleMenuItem(ctx context.Context, planID, itemID string, userID string) (domain.MenuItemResponse, error) {
	var item *entities.MenuItem
	err := s.mutateItem(ctx, planID, itemID, userID, "toggle_item", func(repo MenuRepository, it *entities.MenuItem) error {
		it.IsCompleted = !it.IsCompleted
		if it.IsCompleted {
			now := s.now()
			it.CompletedAt = &now
		} else {
			it.CompletedAt = nil
		}
		item = it
		return repo.SaveItem(ctx, it)
	})
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toItemResponse(item), nil
}

// GetShoppingList returns the list generated for the plan. With regenerate,
// or when none exists yet, the list is rebuilt from the current menu items
// and pantry and replaces the previous one.
func (s *menuService) GetShoppingList(ctx context.Context, planID string, regenerate bool, userID string) (domain.MenuShoppingListResponse, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return domain.MenuShoppingListResponse{}, domain.ErrMenuPlanNotFound
	}

	unlock, err := s.locker.Lock(ctx, locker.MenuPlanKey(planID))
	if err != nil {
		return domain.MenuShoppingListResponse{}, err
	}
	defer unlock()

	plan, err := s.ownedPlan(ctx, s.menuRepository, planID, userID)
	if err != nil {
		return domain.MenuShoppingListResponse{}, err
	}

	if !regenerate {
		existing, err := s.lists.MenuPlanList(ctx, plan.ID)
		if err != nil {
			return domain.MenuShoppingListResponse{}, err
		}
		if existing != nil {
			return domain.MenuShoppingListResponse{
				ShoppingList: shopping.ToListResponse(existing),
				Warnings:     []ingredient.Warning{},
			}, nil
		}
	}

	week, err := s.week(ctx, plan)
	if err != nil {
		return domain.MenuShoppingListResponse{}, err
	}
	stock, err := s.stock.Stock(ctx, userID)
	if err != nil {
		return domain.MenuShoppingListResponse{}, err
	}
	rec := ingredient.Reconcile(week.Requirements, stock)

	list, err := s.lists.ReplaceMenuPlanList(ctx, plan.UserID, plan.ID, plan.Name, rec.Deficient)
	if err != nil {
		return domain.MenuShoppingListResponse{}, err
	}

	warnings := append(week.Warnings, rec.Warnings...)
	s.reportWarnings(warnings, planID)

	return domain.MenuShoppingListResponse{
		ShoppingList: shopping.ToListResponse(list),
		Regenerated:  true,
		Requirements: week.Requirements,
		Sufficient:   rec.Sufficient,
		Deficient:    rec.Deficient,
		Warnings:     warnings,
	}, nil
}

func (s *menuService) GetNutrition(ctx context.Context, planID string, userID string) (domain.MenuNutritionResponse, error) {
	plan, err := s.ownedPlan(ctx, s.menuRepository, planID, userID)
	if err != nil {
		return domain.MenuNutritionResponse{}, err
	}

	week, err := s.week(ctx, plan)
	if err != nil {
		return domain.MenuNutritionResponse{}, err
	}
	s.reportWarnings(week.Warnings, planID)

	return domain.MenuNutritionResponse{
		MenuPlanID: plan.ID.String(),
		Summary:    nutrition.Summarize(week.Nutrition),
		Warnings:   week.Warnings,
	}, nil
}

func (s *menuService) week(ctx context.Context, plan *entities.MenuPlan) (Week, error) {
	recipes, err := s.recipes.ResolveRecipes(ctx, plan.UserID.String(), RecipeIDs(plan.Items))
	if err != nil {
		return Week{}, err
	}
	return AggregateWeek(plan.Items, recipes), nil
}

func (s *menuService) resolveRecipe(ctx context.Context, recipeID string, userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, domain.ErrRecipeNotFound
	}
	found, err := s.recipes.ResolveRecipes(ctx, userID, []uuid.UUID{id})
	if err != nil {
		return uuid.Nil, err
	}
	if _, ok := found[id]; !ok {
		return uuid.Nil, domain.ErrRecipeNotFound
	}
	return id, nil
}

// mutate runs fn on the owned plan under the plan lock and inside one
// transaction.
func (s *menuService) mutate(ctx context.Context, planID, userID, op string, fn func(repo MenuRepository, plan *entities.MenuPlan) error) error {
	if _, err := uuid.Parse(planID); err != nil {
		return domain.ErrMenuPlanNotFound
	}

	unlock, err := s.locker.Lock(ctx, locker.MenuPlanKey(planID))
	if err != nil {
		return err
	}
	defer unlock()

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		plan, err := s.ownedPlan(ctx, repo, planID, userID)
		if err != nil {
			return err
		}
		return fn(repo, plan)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			s.metrics.Rejected(domain.Reason(err))
		} else if !errors.Is(err, domain.ErrForbidden) {
			s.log.Error("menu plan mutation", zap.String("op", op), zap.String("menu_plan_id", planID), zap.Error(err))
		}
		return err
	}

	s.metrics.Mutated("menu_plan", op)
	return nil
}

func (s *menuService) mutateItem(ctx context.Context, planID, itemID, userID, op string, fn func(repo MenuRepository, item *entities.MenuItem) error) error {
	return s.mutate(ctx, planID, userID, op, func(repo MenuRepository, plan *entities.MenuPlan) error {
		if _, err := uuid.Parse(itemID); err != nil {
			return domain.ErrMenuItemNotFound
		}
		item, err := repo.GetItemByID(ctx, plan.ID.String(), itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMenuItemNotFound
			}
			return err
		}
		return fn(repo, item)
	})
}

func (s *menuService) ownedPlan(ctx context.Context, repo MenuRepository, planID string, userID string) (*entities.MenuPlan, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return nil, domain.ErrMenuPlanNotFound
	}
	plan, err := repo.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuPlanNotFound
		}
		return nil, err
	}
	if plan.UserID.String() != userID {
		return nil, domain.ErrForbidden
	}
	return plan, nil
}

func (s *menuService) reportWarnings(warnings []ingredient.Warning, planID string) {
	byKind := make(map[ingredient.WarningKind]int)
	for _, w := range warnings {
		s.log.Warn(w.Message,
			zap.String("menu_plan_id", planID),
			zap.String("kind", string(w.Kind)),
			zap.String("menu_item_id", w.MenuItemID))
		byKind[w.Kind]++
	}
	for kind, n := range byKind {
		s.metrics.Warned(string(kind), n)
	}
}

// parseWeek reads the week bounds. A missing end defaults to start + 6
// days; any other span is rejected.
func parseWeek(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidWeek
	}
	if endDate == "" {
		return start, start.Add(weekLength), nil
	}
	end, err := time.Parse(domain.DateLayout, endDate)
	if err != nil || end.Sub(start) != weekLength {
		return time.Time{}, time.Time{}, domain.ErrInvalidWeek
	}
	return start, end, nil
}

func toPlanResponse(p *entities.MenuPlan) domain.MenuPlanResponse {
	items := SortItems(p.Items)
	res := domain.MenuPlanResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		WeekStartDate: p.WeekStartDate.Format(domain.DateLayout),
		WeekEndDate:   p.WeekEndDate.Format(domain.DateLayout),
		IsActive:      p.IsActive,
		Notes:         p.Notes,
		Items:         make([]domain.MenuItemResponse, 0, len(items)),
		CreatedAt:     p.CreatedAt,
	}
	for i := range items {
		res.Items = append(res.Items, toItemResponse(&items[i]))
	}
	return res
}

func toItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	return domain.MenuItemResponse{
		ID:          item.ID.String(),
		DayOfWeek:   item.DayOfWeek,
		MealType:    item.MealType,
		RecipeID:    item.RecipeID.String(),
		Portions:    item.Portions,
		Notes:       item.Notes,
		IsCompleted: item.IsCompleted,
		CompletedAt: item.CompletedAt,
	}
}
