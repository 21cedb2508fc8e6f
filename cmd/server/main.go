package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authMiddleware "github.com/egliseduberger/website/internal/auth/middleware"
	"github.com/egliseduberger/website/internal/auth/session"
	"github.com/egliseduberger/website/internal/config"
	"github.com/egliseduberger/website/internal/database"
	"github.com/egliseduberger/website/internal/handlers"
	"github.com/egliseduberger/website/internal/logger"
	loggerMiddleware "github.com/egliseduberger/website/internal/logger/middleware"
	"github.com/egliseduberger/website/internal/middlewares"
	"github.com/egliseduberger/website/internal/repositories"
	"github.com/egliseduberger/website/internal/services"
	"github.com/egliseduberger/website/internal/tasks"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
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

	logger.Logger.Info("Starting Église Duberger website")

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

	// Initialize session store
	store, closeStore, err := newSessionStore(cfg, db)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer closeStore()
	sessions := session.NewManager(store, session.NewCookieSigner(cfg.Session.Secret), cfg.Session.TTL, cfg.Server.Production)

	// Initialize contact notifier
	notifier, closeNotifier := newContactNotifier(cfg)
	defer closeNotifier()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	sermonRepo := repositories.NewSermonRepository(db, logger.Logger)
	eventRepo := repositories.NewEventRepository(db, logger.Logger)
	ministryRepo := repositories.NewMinistryRepository(db, logger.Logger)
	houseGroupRepo := repositories.NewHouseGroupRepository(db, logger.Logger)
	teamMemberRepo := repositories.NewTeamMemberRepository(db, logger.Logger)
	churchValueRepo := repositories.NewChurchValueRepository(db, logger.Logger)
	faqRepo := repositories.NewFAQRepository(db, logger.Logger)
	contactMessageRepo := repositories.NewContactMessageRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, logger.Logger)
	sermonService := services.NewSermonService(sermonRepo, logger.Logger)
	contactService := services.NewContactService(contactMessageRepo, notifier, logger.Logger)

	// Initialize views
	renderer, err := views.NewTemplateRenderer()
	if err != nil {
		logger.Logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(eventRepo, ministryRepo, sermonService, renderer, logger.Logger)
	authHandler := handlers.NewAuthHandler(authService, sessions, renderer, logger.Logger)
	aboutHandler := handlers.NewAboutHandler(teamMemberRepo, churchValueRepo, renderer, logger.Logger)
	ministryHandler := handlers.NewMinistryHandler(ministryRepo, houseGroupRepo, renderer, logger.Logger)
	mediaHandler := handlers.NewMediaHandler(sermonService, renderer, logger.Logger)
	eventHandler := handlers.NewEventHandler(eventRepo, renderer, logger.Logger)
	contactHandler := handlers.NewContactHandler(faqRepo, contactService, renderer, logger.Logger)

	sessionMiddleware := authMiddleware.SessionMiddleware(sessions, logger.Logger)
	footerMiddleware := handlers.FooterMiddleware(ministryRepo, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(middlewares.DefaultMaxRequestSize))

	// Static assets skip the session and footer lookups
	fileServer := http.FileServer(http.Dir(cfg.Server.StaticDir))
	for _, prefix := range []string{"/css/*", "/js/*", "/images/*"} {
		r.Handle(prefix, fileServer)
	}
	r.Handle("/favicon.ico", fileServer)

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Use(footerMiddleware)

		homeHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, httprate.LimitByIP(10, time.Minute))
		aboutHandler.RegisterRoutes(r)
		ministryHandler.RegisterRoutes(r)
		mediaHandler.RegisterRoutes(r)
		eventHandler.RegisterRoutes(r)
		contactHandler.RegisterRoutes(r)
	})

	r.NotFound(sessionMiddleware(footerMiddleware(http.HandlerFunc(homeHandler.NotFound))).ServeHTTP)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("session_store", cfg.Session.Store),
			zap.Bool("production", cfg.Server.Production),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// newSessionStore builds the configured session store together with its cleanup function
func newSessionStore(cfg *config.Config, db *sql.DB) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return session.NewRedisStore(rdb, logger.Logger), func() { rdb.Close() }, nil
	case config.SessionStorePostgres:
		return session.NewPostgresStore(db, logger.Logger), func() {}, nil
	default:
		logger.Logger.Warn("Using in-memory session store; sessions are lost on restart")
		return session.NewMemoryStore(), func() {}, nil
	}
}

// newContactNotifier enqueues contact notifications on the task queue when a recipient is configured
func newContactNotifier(cfg *config.Config) (services.ContactNotifier, func()) {
	if cfg.Notifications.ContactEmail == "" {
		logger.Logger.Info("Contact notifications disabled")
		return tasks.NoopNotifier{}, func() {}
	}

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return tasks.NewAsynqNotifier(client, logger.Logger), func() { client.Close() }
}
