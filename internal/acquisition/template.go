// Package acquisition turns free-text review notes into criteria templates and
// candidate evaluations by calling a generative model.
package acquisition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/llm"
	"github.com/jonathan/intern-eval/internal/prompts"
	"github.com/jonathan/intern-eval/internal/schemas"
	"github.com/jonathan/intern-eval/internal/types"
)

// TemplateSource produces the shared criteria template for an evaluation session.
// A successful call may return an empty slice; callers decide what that means.
type TemplateSource interface {
	CreateTemplate(ctx context.Context, referenceText string) ([]types.Criterion, error)
}

// ReviewParser splits raw review notes into per-candidate evaluations
type ReviewParser interface {
	ParseReviews(ctx context.Context, rawText string) ([]types.Candidate, error)
}

// Gemini implements TemplateSource and ReviewParser on top of an llm.Client.
// The API key is looked up on every call, never cached.
type Gemini struct {
	newClient llm.Factory
	apiKey    func() string
	tier      llm.ModelTier
	logger    *zap.Logger
}

// Option configures a Gemini source
type Option func(*Gemini)

// WithAPIKeyFunc replaces the environment lookup of the API key
func WithAPIKeyFunc(fn func() string) Option {
	return func(g *Gemini) { g.apiKey = fn }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gemini) { g.logger = logger }
}

// WithTier selects the model tier used for both operations
func WithTier(tier llm.ModelTier) Option {
	return func(g *Gemini) { g.tier = tier }
}

// NewGemini creates a Gemini-backed source
func NewGemini(factory llm.Factory, opts ...Option) *Gemini {
	g := &Gemini{
		newClient: factory,
		apiKey:    EnvAPIKey,
		tier:      llm.TierStandard,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type templateResponse struct {
	Criteria []wireCriterion `json:"criteria"`
}

// wireCriterion accepts fractional scores since the model emits numbers
type wireCriterion struct {
	ID    string             `json:"id"`
	Text  string             `json:"text"`
	Type  types.CriteriaType `json:"type"`
	Score float64            `json:"score"`
}

// CreateTemplate asks the model for a deduplicated list of positive, scorable criteria
func (g *Gemini) CreateTemplate(ctx context.Context, referenceText string) ([]types.Criterion, error) {
	req := llm.Request{
		Parts: []string{
			prompts.MustGet(prompts.CriteriaTemplate),
			prompts.Fill(prompts.CriteriaTemplateReference, map[string]string{
				"ReferenceText": referenceText,
			}),
		},
		Schema: templateResponseSchema(),
	}

	text, err := g.generate(ctx, req, schemas.CriteriaTemplate)
	if err != nil {
		return nil, err
	}

	var resp templateResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, &ParseError{Message: "failed to parse criteria template JSON", Cause: err}
	}

	criteria := normalizeCriteria(resp.Criteria)
	g.logger.Debug("criteria template acquired", zap.Int("criteria", len(criteria)))
	return criteria, nil
}

// normalizeCriteria converts model output into template criteria: scores reset
// to unrated, unknown types become STRENGTH and ids are made unique.
func normalizeCriteria(raw []wireCriterion) []types.Criterion {
	criteria := make([]types.Criterion, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, c := range raw {
		id := strings.TrimSpace(c.ID)
		if id == "" || seen[id] {
			id = fmt.Sprintf("c%d", i+1)
		}
		for seen[id] {
			id += "x"
		}
		seen[id] = true

		criterionType := c.Type
		if !criterionType.Valid() {
			criterionType = types.CriteriaStrength
		}

		criteria = append(criteria, types.Criterion{
			ID:    id,
			Text:  strings.TrimSpace(c.Text),
			Type:  criterionType,
			Score: types.ScoreUnrated,
		})
	}
	return criteria
}

// generate runs one structured call and checks the reply against an embedded schema
func (g *Gemini) generate(ctx context.Context, req llm.Request, schemaName string) (string, error) {
	apiKey := g.apiKey()
	if apiKey == "" {
		return "", &MissingCredentialError{Vars: APIKeyEnvVars}
	}

	client, err := g.newClient(ctx, apiKey)
	if err != nil {
		return "", &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	g.logger.Debug("calling model",
		zap.String("model", client.GetModel(g.tier)),
		zap.String("schema", schemaName))

	text, err := client.GenerateJSON(ctx, req, g.tier)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return "", &ParseError{Message: "empty model response", Cause: err}
		}
		return "", &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}

	if err := schemas.Validate(schemaName, text); err != nil {
		return "", &ParseError{Message: "model response does not match schema", Cause: err}
	}

	return text, nil
}
