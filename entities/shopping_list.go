package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;index" json:"user_id"`
	MenuPlanID  *uuid.UUID         `gorm:"type:uuid;index" json:"menu_plan_id,omitempty"`
	Title       string             `json:"title"`
	Completed   bool               `json:"completed"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Items       []ShoppingListItem `gorm:"foreignKey:ShoppingListID" json:"items"`

	Timestamp
}

type ShoppingListItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShoppingListID uuid.UUID `gorm:"type:uuid;index" json:"shopping_list_id"`
	Name           string    `gorm:"not null" json:"name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `gorm:"size:16" json:"unit"`
	Category       string    `gorm:"size:32" json:"category"`
	Purchased      bool      `json:"purchased"`
	Position       int       `json:"position"`

	Timestamp
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
