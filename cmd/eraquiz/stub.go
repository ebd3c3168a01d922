package main

import (
	"os/signal"
	"syscall"

	"era-quiz/internal/config"
	"era-quiz/internal/logger"
	"era-quiz/internal/middleware"
	"era-quiz/internal/stubapi"

	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var stubAPICmd = &cobra.Command{
	Use:   "stub-api",
	Short: "Run a local quiz API that answers with a random era",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStubAPI(cmd)
	},
}

func init() {
	stubAPICmd.Flags().Int("port", 0, "Port to listen on (overrides stub_api.port)")
	stubAPICmd.Flags().String("image-base-url", "", "Base URL for era images (overrides stub_api.image_base_url)")
}

func runStubAPI(cmd *cobra.Command) error {
	cfg, err := setup(cmd, func(cfg *config.Config) {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.StubAPI.Port = port
		}
		if base, _ := cmd.Flags().GetString("image-base-url"); base != "" {
			cfg.StubAPI.ImageBaseURL = base
		}
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newFiberApp(cfg.Server, middleware.ErrorHandler())
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	stubapi.NewHandler(cfg.StubAPI.ImageBaseURL).Register(app)

	return listenUntilDone(ctx, app, "stub-api", cfg.StubAPI.Port)
}
