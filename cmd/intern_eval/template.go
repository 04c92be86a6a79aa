package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/observability"
	"github.com/jonathan/intern-eval/internal/prompts"
	"github.com/jonathan/intern-eval/internal/types"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Extract a criteria template from reference notes",
	Long:  "Send reference review notes to Gemini and print the scoring criteria it extracts.",
	RunE:  runTemplate,
}

var (
	templateSource sourceFlags
	templateSample bool
	templateJSON   bool
)

func init() {
	templateSource.register(templateCmd, "Path to a reference text file")
	templateCmd.Flags().BoolVar(&templateSample, "sample", false, "Use the built-in sample reference text")
	templateCmd.Flags().BoolVar(&templateJSON, "json", false, "Print JSON instead of a summary")
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, _ []string) error {
	sources := 0
	for _, set := range []bool{templateSample, templateSource.file != "", templateSource.url != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("provide exactly one of --input, --url or --sample")
	}

	var text string
	if templateSample {
		sample, err := prompts.Get(prompts.SampleReference)
		if err != nil {
			return err
		}
		text = sample
	} else {
		content, err := templateSource.load(commandContext(cmd))
		if err != nil {
			return err
		}
		text = content
	}

	criteria, err := newAcquirer(appConfig, logger).CreateTemplate(commandContext(cmd), text)
	if err == nil && len(criteria) == 0 {
		err = evaluation.ErrEmptyTemplate
	}
	if err != nil {
		return userFacing(err)
	}

	if templateJSON {
		return writeJSON(cmd, map[string][]types.Criterion{"criteria": criteria})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplate(criteria)
	return nil
}

// readTextFile reads a non-blank text file
func readTextFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return "", fmt.Errorf("input file %s is empty", path)
	}
	return string(content), nil
}

// userFacing logs the acquisition detail and returns the generic message
func userFacing(err error) error {
	logger.Error("acquisition failed", zap.Error(err))
	return errors.New(evaluation.UserMessage)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
