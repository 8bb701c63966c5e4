package migration

import (
	"fmt"

	"pantry-planner/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"inventory item", &entities.InventoryItem{}},
		{"recipe", &entities.Recipe{}},
		{"shopping list", &entities.ShoppingList{}},
		{"shopping list item", &entities.ShoppingListItem{}},
		{"menu plan", &entities.MenuPlan{}},
		{"menu item", &entities.MenuItem{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	return nil
}
