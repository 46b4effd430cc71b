// Package cli provides the command-line interface for pipeline-chat.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/athena"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/config"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/dataset"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/llm"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/service"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global config and collaborators, wired in PersistentPreRunE
	cfg        config.Config
	logCleanup func() error
	loader     *dataset.Loader

	// Lazy-initialized model-backed analyst
	analyst *service.Analyst
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pipeline-chat",
	Short: "Chat with your CI/CD pipelines",
	Long: `Pipeline-chat answers natural-language questions about CI/CD pipeline
execution history. Events are loaded once from an Athena table, normalized
and summarized, and every answer is grounded in that data.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)
		logCleanup = cleanup

		exec, err := athena.NewExecutor(cmd.Context(), athena.Config{
			Region:         cfg.AWSRegion,
			Database:       cfg.AthenaDatabase,
			OutputLocation: cfg.AthenaOutputLocation,
			PollInterval:   cfg.PollInterval,
			PollTimeout:    cfg.PollTimeout,
		}, logger)
		if err != nil {
			return fmt.Errorf("create athena executor: %w", err)
		}
		loader = dataset.NewLoader(exec, cfg.AthenaTable, logger)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// getAnalyst lazily creates the model-backed analyst. Commands that never
// generate text (summary, events) skip model initialization.
func getAnalyst(ctx context.Context) (*service.Analyst, error) {
	if analyst == nil {
		model, err := llm.NewGenerator(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init model: %w", err)
		}
		analyst = service.NewAnalyst(model, slog.Default())
	}
	return analyst, nil
}

// loadDataset returns the memoized dataset, mapping load failures to one
// clear message. A failed load halts further interaction.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrNoData) {
			return nil, fmt.Errorf("no pipeline data found: check your Athena table and credentials")
		}
		return nil, fmt.Errorf("failed to load pipeline data: %w", err)
	}
	return ds, nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(eventsCmd)
}
