package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/export"
	"github.com/jonathan/intern-eval/internal/observability"
	"github.com/jonathan/intern-eval/internal/schemas"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a saved evaluation session to CSV",
	Long: `Validate a saved evaluation session (the JSON returned by GET /evaluation)
and write evaluation_results_<date>.csv into the output directory.`,
	RunE: runExport,
}

var (
	exportInputFile    string
	exportOutputDir    string
	exportRole         string
	exportBareProgress bool
)

// now is replaced in tests
var now = time.Now

func init() {
	exportCmd.Flags().StringVarP(&exportInputFile, "input", "i", "", "Path to a session JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOutputDir, "out", "o", "", "Output directory (default from config, \".\")")
	exportCmd.Flags().StringVar(&exportRole, "role", "", "Role column label (default \"Intern/Member\")")
	exportCmd.Flags().BoolVar(&exportBareProgress, "bare-progress", false, "Write progress without the % sign")
	_ = exportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(exportInputFile)
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	if err := schemas.Validate(schemas.EvaluationSession, string(data)); err != nil {
		return fmt.Errorf("invalid session file %s: %w", exportInputFile, err)
	}

	var session evaluation.State
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	opts := export.Options{
		Role:         appConfig.Role,
		BareProgress: appConfig.BareProgress || exportBareProgress,
	}
	if exportRole != "" {
		opts.Role = exportRole
	}
	outDir := appConfig.OutputDir
	if exportOutputDir != "" {
		outDir = exportOutputDir
	}

	path, err := export.WriteFile(outDir, session.Candidates, opts, now())
	if err != nil {
		return err
	}
	if path == "" {
		logger.Info("export skipped: no candidates", zap.String("input", exportInputFile))
	} else {
		logger.Debug("export written", zap.String("path", path), zap.Int("candidates", len(session.Candidates)))
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if verbose {
		printer.PrintCandidates(session.Candidates)
	}
	printer.PrintExport(path, len(session.Candidates))
	return nil
}
