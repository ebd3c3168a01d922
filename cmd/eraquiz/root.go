package main

import (
	"fmt"

	"era-quiz/internal/config"
	"era-quiz/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "eraquiz",
	Short:        "Find out which Taylor Swift era you are",
	Long:         "eraquiz serves the two-page era quiz, a local stand-in for the quiz API, and a one-shot terminal run of the quiz flow.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Directory containing config.yaml (defaults to . and ./config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stubAPICmd)
	rootCmd.AddCommand(fetchCmd)
}

// setup loads the configuration, lets the command apply its flag overrides,
// validates the result and initializes the global logger.
func setup(cmd *cobra.Command, override func(cfg *config.Config)) (*config.Config, error) {
	var paths []string
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		paths = append(paths, dir)
	}

	cfg, err := config.LoadConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
