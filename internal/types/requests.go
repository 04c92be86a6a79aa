package types

import "github.com/go-playground/validator/v10"

// GenerateRequest is the body of a form generation request.
// CandidateCount is only used when no usable names are supplied.
type GenerateRequest struct {
	ReferenceText  string   `json:"reference_text" validate:"required"`
	CandidateNames []string `json:"candidate_names" validate:"max=50,dive,max=200"`
	CandidateCount int      `json:"candidate_count,omitempty" validate:"omitempty,min=1,max=50"`
}

// UpdateScoreRequest sets the score of one criterion
type UpdateScoreRequest struct {
	Score int `json:"score" validate:"min=1,max=5"`
}

// RecommendationRequest sets a candidate's position recommendation
type RecommendationRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// ParseReviewsRequest is the body of a raw review parsing request
type ParseReviewsRequest struct {
	RawText string `json:"raw_text" validate:"required"`
}

// ParseReviewsResponse wraps the candidates extracted from raw reviews
type ParseReviewsResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// validate is shared; validator caches struct metadata per instance
var validate = validator.New()

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateScoreRequest using the validator.
func (r *UpdateScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RecommendationRequest using the validator.
func (r *RecommendationRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ParseReviewsRequest using the validator.
func (r *ParseReviewsRequest) Validate() error {
	return validate.Struct(r)
}

// SampleResponse carries the built-in sample reference text
type SampleResponse struct {
	ReferenceText string `json:"reference_text"`
}

// ErrorResponse is the body of every non-2xx JSON response.
// Kind is set for acquisition failures only.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// RateLimitResponse is the body of a 429 response
type RateLimitResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Limit      int    `json:"limit"`
	RetryAfter int    `json:"retry_after,omitempty"`
}
