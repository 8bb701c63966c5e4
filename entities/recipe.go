package entities

import (
	"pantry-planner/pkg/nutrition"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe is a favorited recipe. Ingredients are free-text lines and
// Nutrition, when present, is per Portions servings.
type Recipe struct {
	ID          uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                            `gorm:"type:uuid;index" json:"user_id"`
	Title       string                               `gorm:"not null" json:"title"`
	Ingredients datatypes.JSONSlice[string]          `json:"ingredients"`
	Steps       datatypes.JSONSlice[string]          `json:"steps"`
	DurationMin int                                  `json:"duration_min,omitempty"`
	Difficulty  string                               `json:"difficulty,omitempty"`
	Category    string                               `json:"category,omitempty"`
	Portions    int                                  `json:"portions"`
	Nutrition   datatypes.JSONType[*nutrition.Facts] `json:"nutrition"`

	Timestamp
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
