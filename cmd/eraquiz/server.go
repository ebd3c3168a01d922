package main

import (
	"context"
	"strconv"
	"time"

	"era-quiz/internal/config"
	"era-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newFiberApp(cfg config.ServerConfig, errorHandler fiber.ErrorHandler) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
}

// listenUntilDone serves app on port until ctx is cancelled, then shuts it
// down gracefully.
func listenUntilDone(ctx context.Context, app *fiber.App, name string, port int) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Get().Info("Starting server", zap.String("server", name), zap.Int("port", port))
		return app.Listen(":" + strconv.Itoa(port))
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Get().Info("Shutting down server...", zap.String("server", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Get().Error("Server forced to shutdown", zap.String("server", name), zap.Error(err))
			return err
		}
		logger.Get().Info("Server exited gracefully", zap.String("server", name))
		return nil
	})

	return g.Wait()
}
