package menu

import (
	"context"

	"pantry-planner/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	MenuRepository interface {
		Transaction(ctx context.Context, fn func(repo MenuRepository) error) error

		CreatePlan(ctx context.Context, plan *entities.MenuPlan) error
		GetPlanByID(ctx context.Context, id string) (*entities.MenuPlan, error)
		GetActivePlan(ctx context.Context, userID string) (*entities.MenuPlan, error)
		GetPlans(ctx context.Context, userID string, page, limit int) ([]*entities.MenuPlan, int64, error)
		UpdatePlan(ctx context.Context, plan *entities.MenuPlan) error
		DeactivatePlans(ctx context.Context, userID string, exceptID string) error
		DeletePlan(ctx context.Context, id string) error

		GetItemByID(ctx context.Context, planID, itemID string) (*entities.MenuItem, error)
		GetItemBySlot(ctx context.Context, planID string, dayOfWeek int, mealType string) (*entities.MenuItem, error)
		CreateItem(ctx context.Context, item *entities.MenuItem) error
		SaveItem(ctx context.Context, item *entities.MenuItem) error
		DeleteItem(ctx context.Context, id string) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Transaction(ctx context.Context, fn func(repo MenuRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&menuRepository{db: tx})
	})
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("day_of_week asc")
}

func (r *menuRepository) CreatePlan(ctx context.Context, plan *entities.MenuPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (r *menuRepository) GetPlanByID(ctx context.Context, id string) (*entities.MenuPlan, error) {
	var plan entities.MenuPlan
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *menuRepository) GetActivePlan(ctx context.Context, userID string) (*entities.MenuPlan, error) {
	var plan entities.MenuPlan
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("week_start_date desc").
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *menuRepository) GetPlans(ctx context.Context, userID string, page, limit int) ([]*entities.MenuPlan, int64, error) {
	var plans []*entities.MenuPlan
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.MenuPlan{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Items", orderedItems).
		Offset(offset).
		Limit(limit).
		Order("week_start_date desc").
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}

	return plans, count, nil
}

func (r *menuRepository) UpdatePlan(ctx context.Context, plan *entities.MenuPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(plan).Error
}

func (r *menuRepository) DeactivatePlans(ctx context.Context, userID string, exceptID string) error {
	query := r.db.WithContext(ctx).Model(&entities.MenuPlan{}).
		Where("user_id = ? AND is_active = ?", userID, true)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	return query.Update("is_active", false).Error
}

// DeletePlan removes the plan with its items and generated shopping lists.
func (r *menuRepository) DeletePlan(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	lists := db.Model(&entities.ShoppingList{}).Select("id").Where("menu_plan_id = ?", id)
	if err := db.Where("shopping_list_id IN (?)", lists).Delete(&entities.ShoppingListItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("menu_plan_id = ?", id).Delete(&entities.ShoppingList{}).Error; err != nil {
		return err
	}
	if err := db.Where("menu_plan_id = ?", id).Delete(&entities.MenuItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entities.MenuPlan{}).Error
}

func (r *menuRepository) GetItemByID(ctx context.Context, planID, itemID string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND menu_plan_id = ?", itemID, planID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetItemBySlot(ctx context.Context, planID string, dayOfWeek int, mealType string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Where("menu_plan_id = ? AND day_of_week = ? AND meal_type = ?", planID, dayOfWeek, mealType).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) SaveItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MenuItem{}).Error
}
