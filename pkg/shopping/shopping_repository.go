package shopping

import (
	"context"

	"pantry-planner/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ShoppingRepository interface {
		Transaction(ctx context.Context, fn func(repo ShoppingRepository) error) error

		CreateList(ctx context.Context, list *entities.ShoppingList) error
		GetListByID(ctx context.Context, id string) (*entities.ShoppingList, error)
		GetListByMenuPlan(ctx context.Context, menuPlanID string) (*entities.ShoppingList, error)
		GetLists(ctx context.Context, userID string, page, limit int) ([]*entities.ShoppingList, int64, error)
		UpdateList(ctx context.Context, list *entities.ShoppingList) error
		DeleteList(ctx context.Context, id string) error
		DeleteListsByMenuPlan(ctx context.Context, menuPlanID string) error

		CreateItem(ctx context.Context, item *entities.ShoppingListItem) error
		SaveItem(ctx context.Context, item *entities.ShoppingListItem) error
		DeleteItem(ctx context.Context, id string) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) Transaction(ctx context.Context, fn func(repo ShoppingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&shoppingRepository{db: tx})
	})
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

func (r *shoppingRepository) CreateList(ctx context.Context, list *entities.ShoppingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *shoppingRepository) GetListByID(ctx context.Context, id string) (*entities.ShoppingList, error) {
	var list entities.ShoppingList
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingRepository) GetListByMenuPlan(ctx context.Context, menuPlanID string) (*entities.ShoppingList, error) {
	var list entities.ShoppingList
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("menu_plan_id = ?", menuPlanID).
		Order("created_at desc").
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingRepository) GetLists(ctx context.Context, userID string, page, limit int) ([]*entities.ShoppingList, int64, error) {
	var lists []*entities.ShoppingList
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.ShoppingList{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Items", orderedItems).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&lists).Error; err != nil {
		return nil, 0, err
	}

	return lists, count, nil
}

func (r *shoppingRepository) UpdateList(ctx context.Context, list *entities.ShoppingList) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(list).Error
}

func (r *shoppingRepository) DeleteList(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("shopping_list_id = ?", id).Delete(&entities.ShoppingListItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entities.ShoppingList{}).Error
}

func (r *shoppingRepository) DeleteListsByMenuPlan(ctx context.Context, menuPlanID string) error {
	db := r.db.WithContext(ctx)
	lists := db.Model(&entities.ShoppingList{}).Select("id").Where("menu_plan_id = ?", menuPlanID)
	if err := db.Where("shopping_list_id IN (?)", lists).Delete(&entities.ShoppingListItem{}).Error; err != nil {
		return err
	}
	return db.Where("menu_plan_id = ?", menuPlanID).Delete(&entities.ShoppingList{}).Error
}

func (r *shoppingRepository) CreateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) SaveItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingListItem{}).Error
}
