// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow caps the criteria listed per candidate
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most limit runes, ending with "..."
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// stars renders a 1-5 score as filled and empty stars, "unrated" for 0
func stars(score int) string {
	if score <= types.ScoreUnrated {
		return "unrated"
	}
	score = min(score, types.MaxScore)
	return strings.Repeat("★", score) + strings.Repeat("☆", types.MaxScore-score)
}

// PrintTemplate outputs every criterion of an acquired template.
func (p *Printer) PrintTemplate(criteria []types.Criterion) {
	if len(criteria) == 0 {
		p.printBox("CRITERIA TEMPLATE", "No criteria extracted")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d criteria:\n\n", len(criteria)))
	for _, c := range criteria {
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", c.Type, c.Text))
	}

	p.printBox("CRITERIA TEMPLATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidates outputs one box per candidate with its scores and progress.
func (p *Printer) PrintCandidates(candidates []types.Candidate) {
	for _, cand := range candidates {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Average:  %s\n", evaluation.Average(cand)))
		sb.WriteString(fmt.Sprintf("Progress: %d%% (%d/%d rated)\n",
			evaluation.Progress(cand), evaluation.RatedCount(cand), len(cand.Criteria)))
		if cand.PositionRecommendation != "" {
			sb.WriteString(fmt.Sprintf("Position: %s\n", cand.PositionRecommendation))
		}

		if len(cand.Criteria) > 0 {
			sb.WriteString("\n")
			count := min(len(cand.Criteria), maxItemsToShow)
			for i := 0; i < count; i++ {
				c := cand.Criteria[i]
				sb.WriteString(fmt.Sprintf("%s %s\n", stars(c.Score), c.Text))
			}
			if len(cand.Criteria) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("... and %d more\n", len(cand.Criteria)-maxItemsToShow))
			}
		}

		p.printBox(strings.ToUpper(cand.Name), strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintExport reports where an export was written.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExport(path string, candidates int) {
	if path == "" {
		fmt.Fprintln(p.out, "Nothing to export: no candidates")
		return
	}
	fmt.Fprintf(p.out, "Exported %d candidates to %s\n", candidates, path)
}
