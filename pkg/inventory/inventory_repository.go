package inventory

import (
	"context"

	"pantry-planner/entities"

	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction.
		Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error

		AddItem(ctx context.Context, item *entities.InventoryItem) error
		GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error)
		UpdateItem(ctx context.Context, item *entities.InventoryItem) error
		DeleteItem(ctx context.Context, id string) error
		GetItems(ctx context.Context, userID string, page, limit int) ([]*entities.InventoryItem, int64, error)
		GetItemsByName(ctx context.Context, userID string, name string) ([]*entities.InventoryItem, error)
		GetAllItems(ctx context.Context, userID string) ([]*entities.InventoryItem, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryRepository{db: tx})
	})
}

func (r *inventoryRepository) AddItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, id string) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryItem{}).Error
}

func (r *inventoryRepository) GetItems(ctx context.Context, userID string, page, limit int) ([]*entities.InventoryItem, int64, error) {
	var items []*entities.InventoryItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.InventoryItem{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *inventoryRepository) GetItemsByName(ctx context.Context, userID string, name string) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepository) GetAllItems(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name asc").Find(&items).Error
	return items, err
}
