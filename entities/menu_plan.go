package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuPlan struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Name          string     `json:"name"`
	WeekStartDate time.Time  `json:"week_start_date"`
	WeekEndDate   time.Time  `json:"week_end_date"`
	IsActive      bool       `json:"is_active"`
	Notes         string     `json:"notes,omitempty"`
	Items         []MenuItem `gorm:"foreignKey:MenuPlanID" json:"items"`

	Timestamp
}

// MenuItem assigns a recipe to one (day, meal) slot of a plan.
type MenuItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MenuPlanID  uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_menu_slot" json:"menu_plan_id"`
	DayOfWeek   int        `gorm:"uniqueIndex:idx_menu_slot" json:"day_of_week"`
	MealType    string     `gorm:"size:16;uniqueIndex:idx_menu_slot" json:"meal_type"`
	RecipeID    uuid.UUID  `gorm:"type:uuid;index" json:"recipe_id"`
	Portions    int        `json:"portions"`
	Notes       string     `json:"notes,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Timestamp
}

func (p *MenuPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
