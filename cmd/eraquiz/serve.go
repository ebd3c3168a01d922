package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"era-quiz/internal/adapter"
	"era-quiz/internal/adapter/quizapi"
	"era-quiz/internal/cache"
	"era-quiz/internal/config"
	"era-quiz/internal/domain"
	"era-quiz/internal/handler"
	"era-quiz/internal/logger"
	"era-quiz/internal/middleware"
	"era-quiz/internal/navigation"
	"era-quiz/internal/service"
	"era-quiz/internal/telemetry"

	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz and results pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().String("endpoint", "", "Quiz API endpoint (overrides quiz_api.endpoint)")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := setup(cmd, func(cfg *config.Config) {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}
		if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
			cfg.QuizAPI.Endpoint = endpoint
		}
	})
	if err != nil {
		return err
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	store, closeStore, err := newStore(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := quizapi.NewClient(cfg.QuizAPI.Endpoint,
		quizapi.WithTimeout(cfg.QuizAPI.Timeout),
		quizapi.WithTracerProvider(tp),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz API client: %w", err)
	}
	appLogger.Info("Quiz API client initialized",
		zap.String("endpoint", cfg.QuizAPI.Endpoint),
		zap.Duration("timeout", cfg.QuizAPI.Timeout),
	)

	nav := navigation.NewService(store, cfg.Navigation.StateTTL)
	pages := service.NewQuizPages(client, nav, cfg.Navigation.StateTTL)

	pageHandler := handler.NewPageHandler(pages, nav)
	healthHandler := handler.NewHealthHandler(store)

	app := newFiberApp(cfg.Server, middleware.ErrorHandler())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	app.Get("/healthz", healthHandler.Check)

	web := app.Group("", middleware.Session(cfg.Navigation.CookieName, cfg.Navigation.StateTTL))
	pageHandler.Register(web)

	return listenUntilDone(ctx, app, "web", cfg.Server.Port)
}

// newStore connects to Redis when an address is configured and falls back to
// the in-process store otherwise.
func newStore(ctx context.Context, redisCfg config.RedisConfig) (domain.Cache, func(), error) {
	if redisCfg.Address == "" {
		logger.Get().Info("Redis address not set, keeping navigation state in process")
		return adapter.NewMemoryCacheAdapter(), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, redisCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", redisCfg.Address))

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Get().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	return adapter.NewRedisCacheAdapter(client), closeFn, nil
}
