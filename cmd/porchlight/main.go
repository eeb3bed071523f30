// Porchlight server: serves the marketing site API and runs the chat
// lead-qualification pipeline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openhouselabs/porchlight/pkg/api"
	"github.com/openhouselabs/porchlight/pkg/chat"
	"github.com/openhouselabs/porchlight/pkg/config"
	"github.com/openhouselabs/porchlight/pkg/crm"
	"github.com/openhouselabs/porchlight/pkg/database"
	"github.com/openhouselabs/porchlight/pkg/llm"
	"github.com/openhouselabs/porchlight/pkg/reviews"
	"github.com/openhouselabs/porchlight/pkg/services"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config",
		getEnv("PORCHLIGHT_CONFIG", "./deploy/porchlight.yaml"),
		"Path to configuration file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Warn("could not load .env file, continuing with existing environment",
			zap.Error(err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", zap.String("path", *configPath))

	// Database
	db, err := database.NewClient(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		return err
	}
	logger.Info("connected to postgres",
		zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

	// Redis is optional: without it the review cache and lead deduplication
	// fall back to in-process stores.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, using in-memory fallbacks", zap.Error(err))
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
			logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// External review source
	var reviewSource services.ReviewSource
	if cfg.Reviews.APIKey != "" && cfg.Reviews.PlaceID != "" {
		var cache reviews.Cache
		if rdb != nil {
			cache = reviews.NewRedisCache(rdb, cfg.Reviews.CacheTTL, logger)
		} else {
			cache = reviews.NewMemoryCache(cfg.Reviews.CacheTTL)
		}
		client := reviews.NewClient(cfg.Reviews.BaseURL, cfg.Reviews.APIKey, cfg.Reviews.PlaceID)
		reviewSource = reviews.NewService(client, cache)
		logger.Info("review source configured")
	}

	// Completion client
	generator, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	// Services
	sessionService := services.NewSessionService(db.DB())
	leadService := services.NewLeadService(db.DB())
	agentService := services.NewAgentService(db.DB())
	testimonialService := services.NewTestimonialService(db.DB(), reviewSource, logger)
	neighborhoodService := services.NewNeighborhoodService(db.DB())

	// CRM forwarding
	var mailer crm.Mailer
	if cfg.CRM.Host != "" {
		m, err := crm.NewSMTPMailer(cfg.CRM)
		if err != nil {
			return fmt.Errorf("failed to create mailer: %w", err)
		}
		mailer = m
		logger.Info("crm mail forwarding configured", zap.String("host", cfg.CRM.Host))
	} else {
		logger.Warn("crm mail forwarding not configured, leads will be logged only")
	}

	var dedup crm.IdempotencyStore
	if rdb != nil {
		dedup = crm.NewRedisIdempotencyStore(rdb, logger)
	} else {
		dedup = crm.NewMemoryIdempotencyStore()
	}
	sink := crm.NewSink(leadService, agentService, mailer, dedup, logger)

	// Chat pipeline
	orchestrator := chat.NewOrchestrator(
		sessionService, agentService, generator, sink, chat.NewPacer(nil), logger)

	server := api.NewServer(
		db, orchestrator,
		sessionService, leadService, agentService, testimonialService, neighborhoodService,
		logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	var serverErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.Stringer("signal", sig))
	case serverErr = <-errCh:
		logger.Error("server error triggered shutdown", zap.Error(serverErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return serverErr
}
