package inventory

import (
	"context"
	"errors"
	"strings"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/internal/utils/locker"
	"pantry-planner/pkg/ingredient"
	"pantry-planner/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (domain.InventoryItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string) (domain.InventoryItemResponse, error)
		DeleteItem(ctx context.Context, id string, userID string) error
		GetItems(ctx context.Context, userID string, page, limit int) ([]domain.InventoryItemResponse, int64, error)
		GetItemByID(ctx context.Context, id string, userID string) (domain.InventoryItemResponse, error)

		// Stock returns the user's pantry as requirements for reconciliation.
		Stock(ctx context.Context, userID string) ([]ingredient.Requirement, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		locker              locker.Locker
		log                 *zap.Logger
		metrics             *metrics.Metrics
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, l locker.Locker, log *zap.Logger, m *metrics.Metrics) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		locker:              l,
		log:                 log,
		metrics:             m,
	}
}

// AddItem merges the quantity into an existing line with the same name
// and a compatible unit. Otherwise a new line is created.
func (s *inventoryService) AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string) (domain.InventoryItemResponse, error) {
	if req.Quantity <= 0 {
		return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InventoryItemResponse{}, domain.ErrParseUUID
	}

	name := ingredient.NormalizeName(req.Name)
	unit := ingredient.ParseUnit(req.Unit)

	unlock, err := s.locker.Lock(ctx, locker.InventoryKey(userID))
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	defer unlock()

	var item *entities.InventoryItem
	merged := false
	err = s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		existing, err := repo.GetItemsByName(ctx, userID, name)
		if err != nil {
			return err
		}
		for _, e := range existing {
			q, ok := ingredient.Convert(req.Quantity, unit, ingredient.Unit(e.Unit))
			if !ok {
				continue
			}
			e.Quantity = decimal.NewFromFloat(e.Quantity).Add(decimal.NewFromFloat(q)).InexactFloat64()
			item, merged = e, true
			return repo.UpdateItem(ctx, e)
		}

		item = &entities.InventoryItem{
			UserID:    userUUID,
			Name:      name,
			Quantity:  req.Quantity,
			Unit:      string(unit),
			UnitLabel: strings.TrimSpace(req.Unit),
			Category:  string(ingredient.Categorize(name)),
		}
		return repo.AddItem(ctx, item)
	})
	if err != nil {
		s.log.Error("add inventory item", zap.String("user_id", userID), zap.Error(err))
		return domain.InventoryItemResponse{}, err
	}

	s.metrics.Mutated("inventory", "add")
	res := toResponse(item)
	res.Merged = merged
	return res, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string) (domain.InventoryItemResponse, error) {
	unlock, err := s.locker.Lock(ctx, locker.InventoryKey(userID))
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	defer unlock()

	var item *entities.InventoryItem
	err = s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		item, err = s.ownedItem(ctx, repo, id, userID)
		if err != nil {
			return err
		}

		if req.Name != "" {
			item.Name = ingredient.NormalizeName(req.Name)
			item.Category = string(ingredient.Categorize(item.Name))
		}
		if req.Quantity > 0 {
			item.Quantity = req.Quantity
		}
		if req.Unit != "" {
			item.Unit = string(ingredient.ParseUnit(req.Unit))
			item.UnitLabel = strings.TrimSpace(req.Unit)
		}
		return repo.UpdateItem(ctx, item)
	})
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	s.metrics.Mutated("inventory", "update")
	return toResponse(item), nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string, userID string) error {
	unlock, err := s.locker.Lock(ctx, locker.InventoryKey(userID))
	if err != nil {
		return err
	}
	defer unlock()

	err = s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		if _, err := s.ownedItem(ctx, repo, id, userID); err != nil {
			return err
		}
		return repo.DeleteItem(ctx, id)
	})
	if err != nil {
		return err
	}

	s.metrics.Mutated("inventory", "delete")
	return nil
}

func (s *inventoryService) GetItems(ctx context.Context, userID string, page, limit int) ([]domain.InventoryItemResponse, int64, error) {
	items, count, err := s.inventoryRepository.GetItems(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toResponse(item))
	}
	return res, count, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, id string, userID string) (domain.InventoryItemResponse, error) {
	item, err := s.ownedItem(ctx, s.inventoryRepository, id, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *inventoryService) Stock(ctx context.Context, userID string) ([]ingredient.Requirement, error) {
	items, err := s.inventoryRepository.GetAllItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	stock := make([]ingredient.Requirement, 0, len(items))
	for _, item := range items {
		stock = append(stock, ingredient.Requirement{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     ingredient.Unit(item.Unit),
		})
	}
	return stock, nil
}

func (s *inventoryService) ownedItem(ctx context.Context, repo InventoryRepository, id string, userID string) (*entities.InventoryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInventoryItemNotFound
	}
	item, err := repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	if item.UserID.String() != userID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func toResponse(item *entities.InventoryItem) domain.InventoryItemResponse {
	return domain.InventoryItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitLabel:   item.UnitLabel,
		Category:    item.Category,
		LastUpdated: item.UpdatedAt,
	}
}
