package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/egliseduberger/website/internal/config"
	"github.com/egliseduberger/website/internal/database"
	"github.com/egliseduberger/website/internal/logger"
	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/repositories"
	"github.com/egliseduberger/website/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Logger.Fatal("ADMIN_PASSWORD is required")
	}

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// An existing account with the same username gets the new password
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	authService := services.NewAuthService(userRepo, logger.Logger)
	user, err := authService.CreateUser(ctx, username, password, models.RoleAdmin)
	if err != nil {
		logger.Logger.Fatal("Failed to create administrator", zap.Error(err))
	}

	logger.Logger.Info("Administrator saved", zap.Int("id", user.ID), zap.String("username", user.Username))
}
