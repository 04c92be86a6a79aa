// Package export serializes evaluation results to CSV for spreadsheet tools.
package export

import (
	"strconv"
	"strings"

	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/types"
)

const (
	// BOM makes spreadsheet readers decode the file as UTF-8
	BOM = "\uFEFF"
	// MIMEType is the content type of the export file
	MIMEType = "text/csv;charset=utf-8;"
	// DefaultRole is the role label written for every candidate
	DefaultRole = "Intern/Member"
)

// Options tunes the CSV layout
type Options struct {
	// Role is the role label column value; DefaultRole when empty
	Role string
	// BareProgress writes progress as a plain integer instead of "67%"
	BareProgress bool
}

// ToCSV renders candidates as a CSV document. The header takes its criteria
// columns from the first candidate; every candidate is assumed to share that
// layout. An empty candidate list yields an empty document.
func ToCSV(candidates []types.Candidate, opts Options) string {
	if len(candidates) == 0 {
		return ""
	}

	role := opts.Role
	if role == "" {
		role = DefaultRole
	}
	if strings.ContainsAny(role, ",\"\r\n") {
		role = escapeField(role)
	}

	header := []string{"Candidate Name", "Role"}
	for _, c := range candidates[0].Criteria {
		header = append(header, escapeField(c.Text))
	}
	header = append(header, "Average Score", "Progress")

	rows := make([]string, 0, len(candidates)+1)
	rows = append(rows, strings.Join(header, ","))

	for _, candidate := range candidates {
		fields := make([]string, 0, len(candidate.Criteria)+4)
		fields = append(fields, escapeField(candidate.Name), role)
		for _, c := range candidate.Criteria {
			fields = append(fields, strconv.Itoa(c.Score))
		}

		progress := strconv.Itoa(evaluation.Progress(candidate))
		if !opts.BareProgress {
			progress += "%"
		}
		fields = append(fields, evaluation.Average(candidate), progress)

		rows = append(rows, strings.Join(fields, ","))
	}

	return BOM + strings.Join(rows, "\n")
}

// escapeField always quotes, doubling embedded quotes
func escapeField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
