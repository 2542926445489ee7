// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"isabella-notion/internal/analyzer"
	"isabella-notion/internal/common/aws"
	"isabella-notion/internal/common/config"
	"isabella-notion/internal/common/database"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/common/observability"
	"isabella-notion/internal/common/openai"
	"isabella-notion/internal/notify"
	"isabella-notion/internal/server"
	"isabella-notion/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting isabella-notion server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init OpenAI client and analyzer ---
	if cfg.OpenAI.APIKey == "" {
		zapLog.Fatal("openai api_key is required")
	}
	openaiClient := openai.New(cfg.OpenAI)
	conversationAnalyzer := analyzer.New(cfg, openaiClient, log)
	zapLog.Info("Conversation analyzer initialized",
		zap.String("model", cfg.OpenAI.Model),
		zap.Bool("singleCall", cfg.Analysis.SingleCall),
	)

	opts := server.Options{Obs: obs}

	// --- Init PostgreSQL with retry (optional) ---
	if cfg.Database.Postgres.Enabled() {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			// Test the connection with context
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		templateStore := store.NewTemplateStore(pg.GetDB(), log)
		if err := templateStore.Migrate(ctx); err != nil {
			zapLog.Fatal("template store migration failed", zap.Error(err))
		}
		opts.Store = templateStore
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		zapLog.Info("PostgreSQL disabled, template history unavailable")
	}

	// --- Init Redis with retry (optional) ---
	if cfg.Database.Redis.Enabled() {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		opts.Redis = redisClient
		zapLog.Info("Redis connected successfully",
			zap.Int("rateLimitPerMinute", cfg.Server.RateLimitPerMinute),
		)
	} else {
		zapLog.Info("Redis disabled, rate limiting unavailable")
	}

	// --- Init notification channels (optional) ---
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SNS.Enabled {
		var email notify.EmailSender
		var topic notify.TopicPublisher

		if cfg.Notifications.Email.Enabled {
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			email = sesClient
		}
		if cfg.Notifications.SNS.Enabled {
			snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
			topic = snsClient
		}

		opts.Notifier = notify.New(cfg.Notifications, email, topic, log)
		zapLog.Info("Notification channels initialized",
			zap.Bool("email", cfg.Notifications.Email.Enabled),
			zap.Bool("sns", cfg.Notifications.SNS.Enabled),
		)
	}

	srv := server.NewServer(cfg, conversationAnalyzer, log, opts)

	zapLog.Info("Server listening", zap.String("address", cfg.Server.Address()))
	if err := srv.Start(ctx); err != nil {
		zapLog.Fatal("server exited with error", zap.Error(err))
	}

	zapLog.Info("Server shut down cleanly")
}
