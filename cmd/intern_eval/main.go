// Package main provides the entry point for the intern evaluation CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/acquisition"
	"github.com/jonathan/intern-eval/internal/config"
	"github.com/jonathan/intern-eval/internal/llm"
)

var (
	verbose    bool
	configPath string

	logger    = zap.NewNop()
	appConfig = config.Default()
)

// acquirer is what the commands need from the AI-backed source
type acquirer interface {
	acquisition.TemplateSource
	acquisition.ReviewParser
}

// newAcquirer builds the Gemini-backed source; tests replace it
var newAcquirer = func(cfg config.Config, logger *zap.Logger) acquirer {
	llmConfig := llm.ConfigFromEnv()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}
	return acquisition.NewGemini(llm.NewFactory(llmConfig), acquisition.WithLogger(logger))
}

var rootCmd = &cobra.Command{
	Use:   "intern_eval",
	Short: "Intern evaluation form generator",
	Long: `intern_eval turns free-text performance review notes into a scoring form
for each candidate, serves the forms over a REST API and exports the scores as CSV.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
}

// setup resolves configuration (file, then defaults, then environment) and builds the logger
func setup(_ *cobra.Command, _ []string) error {
	fileConfig := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		fileConfig = loaded
	}

	cfg := fileConfig.MergeWithDefaults(config.Default())
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	built, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
