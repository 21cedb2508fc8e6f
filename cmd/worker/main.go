package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/egliseduberger/website/internal/auth/session"
	"github.com/egliseduberger/website/internal/config"
	"github.com/egliseduberger/website/internal/database"
	"github.com/egliseduberger/website/internal/logger"
	"github.com/egliseduberger/website/internal/tasks"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// sessionPurgeSchedule is how often expired sessions are purged
const sessionPurgeSchedule = "@hourly"

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

	logger.Logger.Info("Starting Église Duberger worker")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var sessions ExpiredSessionPurger
	if cfg.Session.Store == config.SessionStorePostgres {
		sessions = session.NewPostgresStore(db, logger.Logger)
	}

	// Create worker instance
	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	worker := NewWorker(logger.Logger, dialer, sessions, cfg.SMTP.From, cfg.Notifications.ContactEmail)

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				tasks.QueueNotifications: 5,
				"default":                1,
			},
		},
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeContactNotification, worker.HandleContactNotification)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	// Schedule the session purge
	scheduler := cron.New()
	if sessions != nil {
		if _, err := scheduler.AddFunc(sessionPurgeSchedule, worker.PurgeExpiredSessions); err != nil {
			logger.Logger.Fatal("Failed to schedule session purge", zap.Error(err))
		}
		logger.Logger.Info("Session purge scheduled", zap.String("schedule", sessionPurgeSchedule))
	}
	scheduler.Start()

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	<-scheduler.Stop().Done()
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}
