package main

import (
	"os"
	"os/signal"
	"syscall"

	"pantry-planner/cmd/config"
	migration "pantry-planner/cmd/database/migrate"
	"pantry-planner/internal/utils"
	"pantry-planner/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	log := logger.New(logger.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	defer func() { _ = log.Sync() }()

	db, err := config.ConnectDB(log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	app, err := config.NewApp(db, log)
	if err != nil {
		log.Fatal("build app", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	addr := ":" + utils.GetConfig("APP_PORT")
	log.Info("listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
