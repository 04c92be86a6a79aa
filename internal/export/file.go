package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/intern-eval/internal/types"
)

// FilePrefix starts every export file name
const FilePrefix = "evaluation_results_"

// FileName returns the export file name for the UTC date of t
func FileName(t time.Time) string {
	return FilePrefix + t.UTC().Format(time.DateOnly) + ".csv"
}

// WriteFile writes the CSV export into dir and returns its path.
// Nothing is written for an empty candidate list and the returned path is "".
func WriteFile(dir string, candidates []types.Candidate, opts Options, now time.Time) (string, error) {
	content := ToCSV(candidates, opts)
	if content == "" {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return path, nil
}
