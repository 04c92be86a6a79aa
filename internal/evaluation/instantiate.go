package evaluation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/intern-eval/internal/types"
)

// MaxCandidates bounds one generation batch
const MaxCandidates = 50

// Instantiate builds one candidate per name from a shared template.
// Criterion ids get the candidate index as suffix so no two candidates share
// an id or any criteria storage.
func Instantiate(template []types.Criterion, names []string, newID func(index int) string) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(names))
	for i, name := range names {
		criteria := make([]types.Criterion, len(template))
		for j, c := range template {
			criteria[j] = types.Criterion{
				ID:    fmt.Sprintf("%s-%d", c.ID, i),
				Text:  c.Text,
				Type:  c.Type,
				Score: types.ScoreUnrated,
			}
		}
		candidates = append(candidates, types.Candidate{
			ID:       newID(i),
			Name:     name,
			Criteria: criteria,
		})
	}
	return candidates
}

// ResolveNames trims names and drops blank ones. When nothing is left it
// falls back to count placeholders "Intern 1".."Intern N", count clamped to 1..MaxCandidates.
func ResolveNames(names []string, count int) []string {
	resolved := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			resolved = append(resolved, n)
		}
	}
	if len(resolved) > 0 {
		return resolved
	}

	count = max(1, min(count, MaxCandidates))
	for i := 1; i <= count; i++ {
		resolved = append(resolved, fmt.Sprintf("Intern %d", i))
	}
	return resolved
}

func defaultCandidateID(index int) string {
	return fmt.Sprintf("cand-%d-%s", index, uuid.NewString())
}
