package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/growthgenius/engagebot/common/id"
	"github.com/growthgenius/engagebot/common/logger"
	"github.com/growthgenius/engagebot/common/otel"
	"github.com/growthgenius/engagebot/core/config"
	"github.com/growthgenius/engagebot/core/db"
	"github.com/growthgenius/engagebot/internal/classify"
	"github.com/growthgenius/engagebot/internal/dedup"
	"github.com/growthgenius/engagebot/internal/http/handler/webhook"
	"github.com/growthgenius/engagebot/internal/http/middleware"
	httprouter "github.com/growthgenius/engagebot/internal/http/router"
	"github.com/growthgenius/engagebot/internal/identity"
	"github.com/growthgenius/engagebot/internal/ingest"
	"github.com/growthgenius/engagebot/internal/instagram"
	"github.com/growthgenius/engagebot/internal/llm"
	"github.com/growthgenius/engagebot/internal/responder"
	"github.com/growthgenius/engagebot/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "engagebot starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "database connected")

	guard := dedup.NewMemoryGuard()
	if cfg.Dedup.RedisEnabled() {
		redisOpts, err := redis.ParseURL(cfg.Dedup.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		guard = dedup.NewRedisGuard(redisClient, cfg.Dedup.SeenTTL, nil)
		slog.InfoContext(ctx, "redis connected, using shared dedup guard")
	}

	resolver := identity.NewResolver(cfg.Instagram.BusinessID, func(selfID string) error {
		return config.SaveBusinessID(cfg.EnvFile, selfID)
	})

	generator, err := llm.NewOpenAIClient(cfg.OpenAI)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}

	classifier := classify.NewHuggingFaceClassifier(cfg.Classify, responder.IntentLabels())
	outbound := instagram.NewClient(cfg.Instagram, resolver)
	interactions := store.NewInteractionStore(database.Pool())

	responses := responder.New(classifier, generator, interactions, nil)
	eventRouter := ingest.NewRouter(resolver, guard, responses, outbound, nil)
	webhookHandler := webhook.NewInstagramWebhookHandler(eventRouter, cfg.Instagram.VerifyToken)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, webhookHandler)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, webhookHandler *webhook.InstagramWebhookHandler) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, webhookHandler)

	return router
}
