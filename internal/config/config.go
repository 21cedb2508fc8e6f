// Package config provides configuration for the application
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// SessionStoreMemory keeps sessions in process memory
	SessionStoreMemory = "memory"
	// SessionStoreRedis keeps sessions in Redis
	SessionStoreRedis = "redis"
	// SessionStorePostgres keeps sessions in the sessions table
	SessionStorePostgres = "postgres"

	developmentSessionSecret = "secret_key_change_in_prod"
)

// Config holds all configuration for the application
type Config struct {
	Database      DatabaseConfig
	Server        ServerConfig
	Logging       LoggingConfig
	Session       SessionConfig
	Redis         RedisConfig
	SMTP          SMTPConfig
	Notifications NotificationsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port       int
	StaticDir  string
	Production bool
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// SessionConfig holds session cookie and store settings
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Store  string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NotificationsConfig holds settings for contact form notifications
type NotificationsConfig struct {
	ContactEmail string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	cfg.Server.Production = appEnv == "production"

	if err := loadDatabase(cfg); err != nil {
		return nil, err
	}

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = os.Getenv("PORT")
	}
	if serverPortStr == "" {
		serverPortStr = "3000" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	cfg.Server.StaticDir = os.Getenv("STATIC_DIR")
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "public"
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// Session configuration
	cfg.Session.Secret = os.Getenv("SESSION_SECRET")
	if cfg.Session.Secret == "" {
		if cfg.Server.Production {
			return nil, fmt.Errorf("SESSION_SECRET is required in production")
		}
		cfg.Session.Secret = developmentSessionSecret
	}

	ttlStr := os.Getenv("SESSION_TTL")
	if ttlStr == "" {
		ttlStr = "24h"
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.TTL = ttl

	store := strings.ToLower(os.Getenv("SESSION_STORE"))
	switch store {
	case "":
		store = SessionStoreMemory
	case SessionStoreMemory, SessionStoreRedis, SessionStorePostgres:
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE: %s, must be 'memory', 'redis' or 'postgres'", store)
	}
	cfg.Session.Store = store

	// Redis configuration (session store and task queue)
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost" // default
	}
	cfg.Redis.Host = redisHost

	redisPortStr := os.Getenv("REDIS_PORT")
	if redisPortStr == "" {
		redisPortStr = "6379" // default
	}
	redisPort, err := strconv.Atoi(redisPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0" // default
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.Redis.DB = redisDB

	// SMTP configuration (worker only)
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "localhost" // default
	}
	cfg.SMTP.Host = smtpHost

	smtpPortStr := os.Getenv("SMTP_PORT")
	if smtpPortStr == "" {
		smtpPortStr = "587" // default
	}
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTP.Port = smtpPort

	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME") // optional
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD") // optional

	smtpFrom := os.Getenv("SMTP_FROM")
	if smtpFrom == "" {
		smtpFrom = "noreply@egliseduberger.org" // default
	}
	cfg.SMTP.From = smtpFrom

	// Empty disables contact notifications
	cfg.Notifications.ContactEmail = os.Getenv("CONTACT_NOTIFY_EMAIL")

	return cfg, nil
}

// loadDatabase fills database settings either from DATABASE_URL or from discrete DB_* variables
func loadDatabase(cfg *Config) error {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
		return nil
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432"
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "postgres"
	}
	cfg.Database.User = dbUser

	cfg.Database.Password = os.Getenv("DB_PASSWORD")

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "eglise"
	}
	cfg.Database.DBName = dbName

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := "disable"
	if c.Server.Production {
		sslMode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

// RedisAddr returns the host:port address of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
