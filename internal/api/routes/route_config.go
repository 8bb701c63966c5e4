package routes

import (
	"pantry-planner/internal/api/handlers"
	"pantry-planner/internal/middleware"
	"pantry-planner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                 *fiber.App
	InventoryHandler    handlers.InventoryHandler
	RecipeHandler       handlers.RecipeHandler
	ShoppingListHandler handlers.ShoppingListHandler
	MenuPlanHandler     handlers.MenuPlanHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
	Gatherer            prometheus.Gatherer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Inventory()
	c.Recipes()
	c.ShoppingLists()
	c.MenuPlans()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.Gatherer != nil {
		c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})))
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))
	inventory.Post("", c.InventoryHandler.AddItem)
	inventory.Get("", c.InventoryHandler.GetItems)
	inventory.Get("/:id", c.InventoryHandler.GetItemDetails)
	inventory.Put("/:id", c.InventoryHandler.UpdateItem)
	inventory.Delete("/:id", c.InventoryHandler.DeleteItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("", c.RecipeHandler.SaveRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/availability", c.RecipeHandler.CheckAvailability)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) ShoppingLists() {
	lists := c.App.Group("/api/v1/shopping-lists", c.Middleware.AuthMiddleware(c.JWTService))
	lists.Post("", c.ShoppingListHandler.CreateShoppingList)
	lists.Get("", c.ShoppingListHandler.GetShoppingLists)
	lists.Get("/:id", c.ShoppingListHandler.GetShoppingList)
	lists.Get("/:id/categories", c.ShoppingListHandler.GetByCategory)
	lists.Get("/:id/export", c.ShoppingListHandler.ExportList)
	lists.Put("/:id/complete", c.ShoppingListHandler.CompleteList)
	lists.Delete("/:id", c.ShoppingListHandler.DeleteList)

	// items
	lists.Post("/:id/items", c.ShoppingListHandler.AddItem)
	lists.Put("/:id/items/:itemId", c.ShoppingListHandler.ToggleItem)
	lists.Put("/:id/items/:itemId/category", c.ShoppingListHandler.UpdateItemCategory)
	lists.Delete("/:id/items/:itemId", c.ShoppingListHandler.RemoveItem)
}

func (c *Config) MenuPlans() {
	plans := c.App.Group("/api/v1/menu-plans", c.Middleware.AuthMiddleware(c.JWTService))
	plans.Post("", c.MenuPlanHandler.CreateMenuPlan)
	plans.Get("", c.MenuPlanHandler.GetMenuPlans)
	plans.Get("/active", c.MenuPlanHandler.GetActiveMenuPlan)
	plans.Get("/:id", c.MenuPlanHandler.GetMenuPlan)
	plans.Put("/:id", c.MenuPlanHandler.UpdateMenuPlan)
	plans.Delete("/:id", c.MenuPlanHandler.DeleteMenuPlan)

	// items
	plans.Post("/:id/items", c.MenuPlanHandler.SaveMenuItem)
	plans.Put("/:id/items/:itemId", c.MenuPlanHandler.UpdateMenuItem)
	plans.Put("/:id/items/:itemId/toggle", c.MenuPlanHandler.ToggleMenuItem)
	plans.Delete("/:id/items/:itemId", c.MenuPlanHandler.DeleteMenuItem)

	// derived views
	plans.Get("/:id/shopping-list", c.MenuPlanHandler.GetShoppingList)
	plans.Get("/:id/nutrition", c.MenuPlanHandler.GetNutrition)
}
