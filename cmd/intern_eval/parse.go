package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/intern-eval/internal/observability"
	"github.com/jonathan/intern-eval/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Split raw review notes into per-candidate evaluations",
	Long:  "Send raw review notes covering several interns to Gemini and print one structured evaluation per candidate.",
	RunE:  runParse,
}

var (
	parseSource sourceFlags
	parseJSON   bool
)

func init() {
	parseSource.register(parseCmd, "Path to a raw review text file")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print JSON instead of a summary")
	parseCmd.MarkFlagsMutuallyExclusive("input", "url")
	parseCmd.MarkFlagsOneRequired("input", "url")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	text, err := parseSource.load(commandContext(cmd))
	if err != nil {
		return err
	}

	candidates, err := newAcquirer(appConfig, logger).ParseReviews(commandContext(cmd), text)
	if err != nil {
		return userFacing(err)
	}

	if parseJSON {
		return writeJSON(cmd, types.ParseReviewsResponse{Candidates: candidates})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCandidates(candidates)
	return nil
}
