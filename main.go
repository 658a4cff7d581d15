package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"talenthub/internal/cache"
	"talenthub/internal/config"
	"talenthub/internal/database"
	"talenthub/internal/logging"
	"talenthub/internal/server"
	"talenthub/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	// --- Sentry ---
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.SentrySampleRate,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	// --- RabbitMQ (optional) ---
	mqClient := connectEvents(cfg)
	opts := server.Options{AccessLog: true}
	if mqClient != nil {
		opts.Events = mqClient
	}

	// --- Redis limiter storage (optional) ---
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	storage := limiterStorage(ctx, cfg)
	cancel()
	if storage != nil {
		opts.LimiterStorage = storage
	}

	app := server.New(cfg, db, opts)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.AppPort, "env", cfg.AppEnv)
		if err := app.Listen(cfg.AppPort); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			slog.Error("rabbitmq close error", "error", err)
		}
	}
	if storage != nil {
		if err := storage.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

// connectEvents returns nil when no broker is configured or reachable;
// domain events are then skipped.
func connectEvents(cfg *config.Config) *rabbitmq.Client {
	if cfg.RabbitMQURL == "" {
		slog.Info("RABBITMQ_URL not set, domain events disabled")
		return nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
	if err != nil {
		slog.Warn("rabbitmq unavailable, domain events disabled", "error", err)
		return nil
	}
	return client
}

// limiterStorage returns nil when REDIS_URL is unset or unreachable, which
// keeps rate-limit counters in process memory.
func limiterStorage(ctx context.Context, cfg *config.Config) fiber.Storage {
	if cfg.RedisURL == "" {
		return nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, using in-memory rate limiter", "error", err)
		return nil
	}
	return cache.NewRedisStorage(client, "talenthub:limiter:")
}
