// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"user-api/cmd"
	"user-api/internal/data/repository"
	"user-api/internal/wire"
	"user-api/pkg/database"
	"user-api/pkg/metrics"
	"user-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		return err
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			logger.Error("Failed to run migrations", zap.Error(err))
			return err
		}
		logger.Info("Migrations applied")
	}

	repos := repository.NewRepository(db, logger)

	app, err := wire.Wiring(repos, db, config, metrics.New("user_api"), logger)
	if err != nil {
		logger.Error("Failed to wire application", zap.Error(err))
		return err
	}

	if err := app.Service.User.EnsureAdmin(ctx, config.Admin); err != nil {
		logger.Error("Failed to ensure bootstrap admin", zap.Error(err))
		return err
	}

	return cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
