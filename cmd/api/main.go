// Package main is the entrypoint for the apihub API server.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/apihub/apihub/internal/cache"
	"github.com/apihub/apihub/internal/config"
	"github.com/apihub/apihub/internal/handler"
	"github.com/apihub/apihub/internal/metrics"
	"github.com/apihub/apihub/internal/middleware"
	"github.com/apihub/apihub/internal/repository"
	"github.com/apihub/apihub/internal/server"
	"github.com/apihub/apihub/internal/service"
	"github.com/apihub/apihub/migrations"
)

func main() {
	ctx := context.Background()

	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	if cfg.AutoMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			logger.Error(
				"failed to apply migrations",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("schema migrations applied")
	}

	// Initialize auth cache when configured
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	} else {
		logger.Info("auth cache disabled, resolving tokens against the store")
	}

	// Initialize services
	recorder := metrics.NewNoop()
	authService := service.NewAuthService(repo, recorder)
	entryService := service.NewEntryService(repo, recorder)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Store:   repo,
		Metrics: recorder,
	}
	if cacheClient != nil {
		authCfg.Cache = cacheClient
	}

	// Initialize handlers
	deps := routerDeps{
		base:    handler.New(),
		health:  newHealthHandler(repo, cacheClient),
		auth:    handler.NewAuthHandler(authService, logger),
		entries: handler.NewEntryHandler(entryService, logger),
		feed:    handler.NewFeedHandler(entryService, logger),
		authCfg: authCfg,
		logger:  logger,
	}

	r := setupRouter(deps)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// runMigrations applies the embedded schema migrations over a short-lived
// database/sql connection; goose does not speak the native pgx pool.
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	return migrations.Migrate(db)
}

// newHealthHandler keeps the nil-cache case typed correctly: a nil *cache.Cache
// must become a nil interface, not a non-nil interface wrapping nil.
func newHealthHandler(repo *repository.Repository, cacheClient *cache.Cache) *handler.HealthHandler {
	if cacheClient == nil {
		return handler.NewHealthHandler(repo, nil)
	}
	return handler.NewHealthHandler(repo, cacheClient)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return msg
}
