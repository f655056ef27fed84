package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/shipits/recap/common/id"
	"github.com/shipits/recap/common/llm"
	"github.com/shipits/recap/common/logger"
	"github.com/shipits/recap/common/otel"
	"github.com/shipits/recap/core/config"
	"github.com/shipits/recap/core/db"
	"github.com/shipits/recap/internal/http/middleware"
	httprouter "github.com/shipits/recap/internal/http/router"
	"github.com/shipits/recap/internal/queue"
	"github.com/shipits/recap/internal/service"
	"github.com/shipits/recap/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fmt.Printf("%s\n", banner)

	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// OTel before logger: the production handler ships through its provider.
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		return fmt.Errorf("initializing otel: %w", err)
	}
	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}
	slog.InfoContext(ctx, "recap starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	if err := id.Init(1); err != nil {
		return fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer database.Close(ctx)
	slog.InfoContext(ctx, "mongodb connected", "database", cfg.DB.Database)

	stores := store.NewStores(database.Database())
	if err := stores.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}

	producer, err := buildProducer(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer producer.Close()

	client, err := buildCompletionClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	services := service.NewServices(service.ServicesConfig{
		Stores:   stores,
		Client:   client,
		Producer: producer,
		Summary: service.SummaryConfig{
			MaxLength:       cfg.Summary.MaxLength,
			MaxTokens:       cfg.LLM.MaxTokens,
			GenerateTimeout: cfg.Summary.GenerateTimeout,
		},
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(cfg, services, database),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", "port", cfg.Port)
		serveErr <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		slog.InfoContext(ctx, "shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
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
	return nil
}

// buildProducer connects the Redis Streams producer, or a no-op one when
// Redis is not configured.
func buildProducer(ctx context.Context, cfg config.RedisConfig) (queue.Producer, error) {
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "redis disabled, summary events will not be published")
		return queue.NopProducer{}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Stream)

	return queue.NewRedisProducer(client, cfg.Stream, nil), nil
}

// buildCompletionClient returns nil when no provider is configured; the
// service then serves cached summaries only.
func buildCompletionClient(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	if !cfg.Enabled() {
		slog.WarnContext(ctx, "no completion provider configured, serving cached summaries only")
		return nil, nil
	}

	client, err := llm.New(llm.Config{
		Provider:   cfg.Provider,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		APIVersion: cfg.APIVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("building completion client: %w", err)
	}
	slog.InfoContext(ctx, "completion client ready", "provider", cfg.Provider, "model", client.Model())

	return client, nil
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Spans first, then panic recovery, then the request log so every line
	// carries trace ids.
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, database)

	return router
}

const banner = `
██████╗ ███████╗ ██████╗ █████╗ ██████╗
██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗
██████╔╝█████╗  ██║     ███████║██████╔╝
██╔══██╗██╔══╝  ██║     ██╔══██║██╔═══╝
██║  ██║███████╗╚██████╗██║  ██║██║
╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝
`
