package acquisition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/llm"
	"github.com/jonathan/intern-eval/internal/prompts"
	"github.com/jonathan/intern-eval/internal/schemas"
	"github.com/jonathan/intern-eval/internal/types"
)

type reviewsResponse struct {
	Candidates []wireCandidate `json:"candidates"`
}

type wireCandidate struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	PositionRecommendation string          `json:"positionRecommendation"`
	Criteria               []wireCriterion `json:"criteria"`
}

// ParseReviews splits raw notes into candidates with their own criteria.
// Unnamed reviews get the placeholder "Intern N"; every score starts unrated.
func (g *Gemini) ParseReviews(ctx context.Context, rawText string) ([]types.Candidate, error) {
	req := llm.Request{
		SystemInstruction: prompts.MustGet(prompts.ParseReviewsSystem),
		Parts: []string{
			prompts.MustGet(prompts.ParseReviews),
			prompts.Fill(prompts.ParseReviewsInput, map[string]string{
				"RawText": rawText,
			}),
		},
		Schema: reviewsResponseSchema(),
	}

	text, err := g.generate(ctx, req, schemas.ReviewParse)
	if err != nil {
		return nil, err
	}

	var resp reviewsResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, &ParseError{Message: "failed to parse review JSON", Cause: err}
	}

	candidates := make([]types.Candidate, 0, len(resp.Candidates))
	for i, c := range resp.Candidates {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = fmt.Sprintf("Intern %d", i+1)
		}
		candidates = append(candidates, types.Candidate{
			ID:                     id,
			Name:                   name,
			PositionRecommendation: strings.TrimSpace(c.PositionRecommendation),
			Criteria:               normalizeCriteria(c.Criteria),
		})
	}

	g.logger.Debug("reviews parsed", zap.Int("candidates", len(candidates)))
	return candidates, nil
}
