package shopping

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/internal/utils/locker"
	"pantry-planner/pkg/ingredient"
	"pantry-planner/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	ShoppingService interface {
		CreateShoppingList(ctx context.Context, req domain.CreateShoppingListRequest, userID string) (domain.ShoppingListResult, error)
		GetShoppingLists(ctx context.Context, userID string, page, limit int) ([]domain.ShoppingListResponse, int64, error)
		GetShoppingList(ctx context.Context, listID string, userID string) (domain.ShoppingListResponse, error)
		GetByCategory(ctx context.Context, listID string, userID string) (domain.CategorizedShoppingListResponse, error)
		ExportList(ctx context.Context, listID string, userID string) (string, error)

		ToggleItem(ctx context.Context, listID, itemID string, req domain.ToggleItemRequest, userID string) (domain.ShoppingListItemResponse, error)
		AddItem(ctx context.Context, listID string, req domain.AddShoppingItemRequest, userID string) (domain.ShoppingListItemResponse, error)
		RemoveItem(ctx context.Context, listID, itemID string, userID string) error
		UpdateItemCategory(ctx context.Context, listID, itemID string, req domain.UpdateItemCategoryRequest, userID string) (domain.ShoppingListItemResponse, error)
		CompleteList(ctx context.Context, listID string, userID string) (domain.ShoppingListResponse, error)
		DeleteList(ctx context.Context, listID string, userID string) error

		// MenuPlanList returns the list generated for a menu plan, or nil.
		MenuPlanList(ctx context.Context, menuPlanID uuid.UUID) (*entities.ShoppingList, error)
		// ReplaceMenuPlanList swaps whatever list a menu plan had for a new
		// one built from deficits, in one transaction. The caller holds the
		// menu plan lock.
		ReplaceMenuPlanList(ctx context.Context, userID, menuPlanID uuid.UUID, title string, deficits []ingredient.Deficiency) (*entities.ShoppingList, error)
		LockMenuPlanList(ctx context.Context, menuPlanID uuid.UUID) (func(), error)
	}

	// StockProvider returns the current pantry of a user.
	StockProvider interface {
		Stock(ctx context.Context, userID string) ([]ingredient.Requirement, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		stock              StockProvider
		locker             locker.Locker
		log                *zap.Logger
		metrics            *metrics.Metrics
		now                func() time.Time
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, stock StockProvider, l locker.Locker, log *zap.Logger, m *metrics.Metrics) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		stock:              stock,
		locker:             l,
		log:                log,
		metrics:            m,
		now:                time.Now,
	}
}

func (s *shoppingService) CreateShoppingList(ctx context.Context, req domain.CreateShoppingListRequest, userID string) (domain.ShoppingListResult, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShoppingListResult{}, domain.ErrParseUUID
	}

	stock, err := s.stock.Stock(ctx, userID)
	if err != nil {
		return domain.ShoppingListResult{}, err
	}

	rec := ingredient.Reconcile(ingredient.ParseAll(req.IngredientLines), stock)
	list := Build(userUUID, req.Title, rec.Deficient, s.now())
	if err := s.shoppingRepository.CreateList(ctx, list); err != nil {
		s.log.Error("create shopping list", zap.String("user_id", userID), zap.Error(err))
		return domain.ShoppingListResult{}, err
	}

	s.reportWarnings(rec.Warnings, zap.String("list_id", list.ID.String()))
	s.metrics.ListBuilt("lines")

	return domain.ShoppingListResult{
		ShoppingList: ToListResponse(list),
		Sufficient:   rec.Sufficient,
		Deficient:    rec.Deficient,
		Warnings:     rec.Warnings,
	}, nil
}

func (s *shoppingService) GetShoppingLists(ctx context.Context, userID string, page, limit int) ([]domain.ShoppingListResponse, int64, error) {
	lists, count, err := s.shoppingRepository.GetLists(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.ShoppingListResponse, 0, len(lists))
	for _, l := range lists {
		res = append(res, ToListResponse(l))
	}
	return res, count, nil
}

func (s *shoppingService) GetShoppingList(ctx context.Context, listID string, userID string) (domain.ShoppingListResponse, error) {
	list, err := s.ownedList(ctx, s.shoppingRepository, listID, userID)
	if err != nil {
		return domain.ShoppingListResponse{}, err
	}
	return ToListResponse(list), nil
}

// GetByCategory groups the items by category, groups sorted by label.
func (s *shoppingService) GetByCategory(ctx context.Context, listID string, userID string) (domain.CategorizedShoppingListResponse, error) {
	list, err := s.ownedList(ctx, s.shoppingRepository, listID, userID)
	if err != nil {
		return domain.CategorizedShoppingListResponse{}, err
	}

	groups := make(map[string]*domain.CategoryGroup)
	for i := range list.Items {
		item := &list.Items[i]
		g, ok := groups[item.Category]
		if !ok {
			g = &domain.CategoryGroup{
				Category:      item.Category,
				CategoryLabel: ingredient.Category(item.Category).Label(),
			}
			groups[item.Category] = g
		}
		g.Items = append(g.Items, toItemResponse(item))
		g.Total++
	}

	res := domain.CategorizedShoppingListResponse{
		ListID:     list.ID.String(),
		Title:      list.Title,
		Categories: make([]domain.CategoryGroup, 0, len(groups)),
		TotalItems: len(list.Items),
	}
	for _, g := range groups {
		res.Categories = append(res.Categories, *g)
	}
	sort.Slice(res.Categories, func(i, j int) bool {
		return res.Categories[i].CategoryLabel < res.Categories[j].CategoryLabel
	})
	return res, nil
}

// ExportList renders the list as plain text, one "name: quantity unit"
// line per item, purchased items ticked.
func (s *shoppingService) ExportList(ctx context.Context, listID string, userID string) (string, error) {
	list, err := s.ownedList(ctx, s.shoppingRepository, listID, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(list.Title)
	b.WriteString("\n")
	for _, item := range list.Items {
		mark := "[ ] "
		if item.Purchased {
			mark = "[x] "
		}
		b.WriteString(mark)
		b.WriteString(ingredient.Format(ingredient.Requirement{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     ingredient.Unit(item.Unit),
		}))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *shoppingService) ToggleItem(ctx context.Context, listID, itemID string, req domain.ToggleItemRequest, userID string) (domain.ShoppingListItemResponse, error) {
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ShoppingListItemResponse{}, domain.ErrShoppingItemNotFound
	}

	var res domain.ShoppingListItemResponse
	err = s.mutate(ctx, listID, userID, "toggle", func(repo ShoppingRepository, list *entities.ShoppingList) error {
		purchased := true
		if req.Purchased != nil {
			purchased = *req.Purchased
		} else if item := findItem(list, itemUUID); item != nil {
			purchased = !item.Purchased
		}
		item, changed, err := ToggleItem(list, itemUUID, purchased)
		if err != nil {
			return err
		}
		res = toItemResponse(item)
		if !changed {
			return nil
		}
		return repo.SaveItem(ctx, item)
	})
	return res, err
}

func (s *shoppingService) AddItem(ctx context.Context, listID string, req domain.AddShoppingItemRequest, userID string) (domain.ShoppingListItemResponse, error) {
	r := ingredient.Requirement{Name: req.Name, Quantity: req.Quantity, Unit: ingredient.ParseUnit(req.Unit)}
	if req.Line != "" {
		r = ingredient.Parse(req.Line)
	} else if r.Quantity == 0 {
		r.Quantity = 1
		if req.Unit == "" {
			r.Unit = ingredient.Count
		}
	}

	var res domain.ShoppingListItemResponse
	err := s.mutate(ctx, listID, userID, "add_item", func(repo ShoppingRepository, list *entities.ShoppingList) error {
		before := len(list.Items)
		item, err := AddItem(list, r)
		if err != nil {
			return err
		}
		res = toItemResponse(item)
		if len(list.Items) > before {
			return repo.CreateItem(ctx, item)
		}
		return repo.SaveItem(ctx, item)
	})
	return res, err
}

func (s *shoppingService) RemoveItem(ctx context.Context, listID, itemID string, userID string) error {
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ErrShoppingItemNotFound
	}

	return s.mutate(ctx, listID, userID, "remove_item", func(repo ShoppingRepository, list *entities.ShoppingList) error {
		if err := RemoveItem(list, itemUUID); err != nil {
			return err
		}
		return repo.DeleteItem(ctx, itemID)
	})
}

func (s *shoppingService) UpdateItemCategory(ctx context.Context, listID, itemID string, req domain.UpdateItemCategoryRequest, userID string) (domain.ShoppingListItemResponse, error) {
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ShoppingListItemResponse{}, domain.ErrShoppingItemNotFound
	}

	var res domain.ShoppingListItemResponse
	err = s.mutate(ctx, listID, userID, "categorize", func(repo ShoppingRepository, list *entities.ShoppingList) error {
		item, err := SetCategory(list, itemUUID, ingredient.Category(req.Category))
		if err != nil {
			return err
		}
		res = toItemResponse(item)
		return repo.SaveItem(ctx, item)
	})
	return res, err
}

func (s *shoppingService) CompleteList(ctx context.Context, listID string, userID string) (domain.ShoppingListResponse, error) {
	var res domain.ShoppingListResponse
	err := s.mutate(ctx, listID, userID, "complete", func(repo ShoppingRepository, list *entities.ShoppingList) error {
		changed := Complete(list, s.now())
		res = ToListResponse(list)
		if !changed {
			return nil
		}
		return repo.UpdateList(ctx, list)
	})
	return res, err
}

func (s *shoppingService) DeleteList(ctx context.Context, listID string, userID string) error {
	return s.mutate(ctx, listID, userID, "delete", func(repo ShoppingRepository, list *entities.ShoppingList) error {
		return repo.DeleteList(ctx, list.ID.String())
	})
}

func (s *shoppingService) MenuPlanList(ctx context.Context, menuPlanID uuid.UUID) (*entities.ShoppingList, error) {
	list, err := s.shoppingRepository.GetListByMenuPlan(ctx, menuPlanID.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return list, err
}

func (s *shoppingService) ReplaceMenuPlanList(ctx context.Context, userID, menuPlanID uuid.UUID, title string, deficits []ingredient.Deficiency) (*entities.ShoppingList, error) {
	old, err := s.MenuPlanList(ctx, menuPlanID)
	if err != nil {
		return nil, err
	}
	if old != nil {
		unlock, err := s.locker.Lock(ctx, locker.ShoppingListKey(old.ID.String()))
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	list := Build(userID, title, deficits, s.now())
	list.MenuPlanID = &menuPlanID

	err = s.shoppingRepository.Transaction(ctx, func(repo ShoppingRepository) error {
		if err := repo.DeleteListsByMenuPlan(ctx, menuPlanID.String()); err != nil {
			return err
		}
		return repo.CreateList(ctx, list)
	})
	if err != nil {
		s.log.Error("replace menu plan shopping list",
			zap.String("menu_plan_id", menuPlanID.String()), zap.Error(err))
		return nil, err
	}

	s.metrics.ListBuilt("menu_plan")
	return list, nil
}

// LockMenuPlanList holds the lock of the list generated for a plan until
// unlock is called. Without a generated list there is nothing to hold.
func (s *shoppingService) LockMenuPlanList(ctx context.Context, menuPlanID uuid.UUID) (func(), error) {
	old, err := s.MenuPlanList(ctx, menuPlanID)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return func() {}, nil
	}
	return s.locker.Lock(ctx, locker.ShoppingListKey(old.ID.String()))
}

// mutate runs fn on the owned list under the list lock and inside one
// transaction.
func (s *shoppingService) mutate(ctx context.Context, listID, userID, op string, fn func(repo ShoppingRepository, list *entities.ShoppingList) error) error {
	if _, err := uuid.Parse(listID); err != nil {
		return domain.ErrShoppingListNotFound
	}

	unlock, err := s.locker.Lock(ctx, locker.ShoppingListKey(listID))
	if err != nil {
		return err
	}
	defer unlock()

	err = s.shoppingRepository.Transaction(ctx, func(repo ShoppingRepository) error {
		list, err := s.ownedList(ctx, repo, listID, userID)
		if err != nil {
			return err
		}
		return fn(repo, list)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			s.metrics.Rejected(domain.Reason(err))
		} else if !errors.Is(err, domain.ErrForbidden) {
			s.log.Error("shopping list mutation", zap.String("op", op), zap.String("list_id", listID), zap.Error(err))
		}
		return err
	}

	s.metrics.Mutated("shopping_list", op)
	return nil
}

func (s *shoppingService) ownedList(ctx context.Context, repo ShoppingRepository, listID string, userID string) (*entities.ShoppingList, error) {
	if _, err := uuid.Parse(listID); err != nil {
		return nil, domain.ErrShoppingListNotFound
	}
	list, err := repo.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingListNotFound
		}
		return nil, err
	}
	if list.UserID.String() != userID {
		return nil, domain.ErrForbidden
	}
	return list, nil
}

func (s *shoppingService) reportWarnings(warnings []ingredient.Warning, fields ...zap.Field) {
	byKind := make(map[ingredient.WarningKind]int)
	for _, w := range warnings {
		s.log.Warn(w.Message, append(fields, zap.String("kind", string(w.Kind)))...)
		byKind[w.Kind]++
	}
	for kind, n := range byKind {
		s.metrics.Warned(string(kind), n)
	}
}

func ToListResponse(list *entities.ShoppingList) domain.ShoppingListResponse {
	res := domain.ShoppingListResponse{
		ID:          list.ID.String(),
		Title:       list.Title,
		Completed:   list.Completed,
		CompletedAt: list.CompletedAt,
		CreatedAt:   list.CreatedAt,
		TotalCount:  len(list.Items),
		Items:       make([]domain.ShoppingListItemResponse, 0, len(list.Items)),
	}
	if list.MenuPlanID != nil {
		res.MenuPlanID = list.MenuPlanID.String()
	}
	for i := range list.Items {
		if list.Items[i].Purchased {
			res.PurchasedCount++
		}
		res.Items = append(res.Items, toItemResponse(&list.Items[i]))
	}
	return res
}

func toItemResponse(item *entities.ShoppingListItem) domain.ShoppingListItemResponse {
	return domain.ShoppingListItemResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		UnitLabel: ingredient.Unit(item.Unit).Label(),
		Category:  item.Category,
		Purchased: item.Purchased,
	}
}
