package main

import (
	"errors"
	"fmt"

	"era-quiz/internal/adapter"
	"era-quiz/internal/adapter/quizapi"
	"era-quiz/internal/config"
	"era-quiz/internal/logger"
	"era-quiz/internal/navigation"
	"era-quiz/internal/service"
	"era-quiz/internal/util"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run the quiz once and print the result",
	Long:  "fetch submits the quiz page once against the configured endpoint and prints what the results page would show.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd)
	},
}

func init() {
	fetchCmd.Flags().String("email", "", "Email entered on the quiz page (kept on the page, not sent)")
	fetchCmd.Flags().String("endpoint", "", "Quiz API endpoint (overrides quiz_api.endpoint)")
}

func runFetch(cmd *cobra.Command) error {
	cfg, err := setup(cmd, func(cfg *config.Config) {
		if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
			cfg.QuizAPI.Endpoint = endpoint
		}
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := quizapi.NewClient(cfg.QuizAPI.Endpoint, quizapi.WithTimeout(cfg.QuizAPI.Timeout))
	if err != nil {
		return fmt.Errorf("failed to create quiz API client: %w", err)
	}

	nav := navigation.NewService(adapter.NewMemoryCacheAdapter(), cfg.Navigation.StateTTL)
	history := nav.Session(util.NewULID())

	page := service.NewQuizPage(client, history)
	email, _ := cmd.Flags().GetString("email")
	page.UpdateEmail(email)
	page.Submit(cmd.Context())

	if state := page.State(); state.HasError() {
		return errors.New(state.Error)
	}

	view, err := service.NewResultPage(history).Mount(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !view.HasResult() {
		fmt.Fprintln(out, view.Message)
		return nil
	}
	fmt.Fprintf(out, "Era: %s\n", view.Result.Era)
	if view.ShowImage {
		fmt.Fprintf(out, "Image: %s\n", view.Result.ImageURL)
	}
	return nil
}
