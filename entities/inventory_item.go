package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem is one pantry line. Unit holds a canonical unit code;
// UnitLabel keeps the spelling the user entered.
type InventoryItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_inventory_owner_name" json:"user_id"`
	Name      string    `gorm:"index:idx_inventory_owner_name;not null" json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `gorm:"size:16" json:"unit"`
	UnitLabel string    `gorm:"size:32" json:"unit_label"`
	Category  string    `gorm:"size:32" json:"category"`

	Timestamp
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
