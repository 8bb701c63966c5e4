package config

import (
	"context"
	"strconv"
	"time"

	"pantry-planner/internal/api/handlers"
	"pantry-planner/internal/api/routes"
	"pantry-planner/internal/middleware"
	"pantry-planner/internal/utils"
	"pantry-planner/internal/utils/locker"
	"pantry-planner/pkg/inventory"
	"pantry-planner/pkg/jwt"
	"pantry-planner/pkg/menu"
	"pantry-planner/pkg/metrics"
	"pantry-planner/pkg/recipe"
	"pantry-planner/pkg/shopping"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "pantry-planner",
	})
	middlewares := middleware.NewMiddleware(log)
	validator := utils.Validate

	// request log and limiter
	app.Use(middlewares.RequestLogger())

	rateLimit, err := strconv.Atoi(utils.GetConfig("RATE_LIMIT_MAX"))
	if err != nil || rateLimit <= 0 {
		rateLimit = 20
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))

	// utils
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	entityLocker, err := NewLocker(log)
	if err != nil {
		return nil, err
	}

	// Repository
	inventoryRepository := inventory.NewInventoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)
	menuRepository := menu.NewMenuRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	inventoryService := inventory.NewInventoryService(inventoryRepository, entityLocker, log, m)
	recipeService := recipe.NewRecipeService(recipeRepository, inventoryService)
	shoppingService := shopping.NewShoppingService(shoppingRepository, inventoryService, entityLocker, log, m)
	menuService := menu.NewMenuService(menuRepository, recipeService, inventoryService, shoppingService, entityLocker, log, m)

	// Handler
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingService, validator)
	menuPlanHandler := handlers.NewMenuPlanHandler(menuService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		InventoryHandler:    inventoryHandler,
		RecipeHandler:       recipeHandler,
		ShoppingListHandler: shoppingListHandler,
		MenuPlanHandler:     menuPlanHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
		Gatherer:            registry,
	}
	routesConfig.Setup()
	return app, nil
}

// NewLocker uses Redis when REDIS_ADDR is set so that several instances
// share entity locks, and an in-process locker otherwise.
func NewLocker(log *zap.Logger) (locker.Locker, error) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		log.Info("using in-process entity locks")
		return locker.NewMemoryLocker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("redis ping failed", zap.String("addr", addr), zap.Error(err))
		return nil, err
	}

	log.Info("using redis entity locks", zap.String("addr", addr))
	return locker.NewRedisLocker(client, 0, log.Named("locker")), nil
}
