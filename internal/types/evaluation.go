// Package types provides type definitions for structured data used throughout the evaluation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CriteriaType classifies an evaluation criterion
type CriteriaType string

// Criteria types understood by the form and the AI contract
const (
	CriteriaStrength       CriteriaType = "STRENGTH"
	CriteriaWeakness       CriteriaType = "WEAKNESS"
	CriteriaRecommendation CriteriaType = "RECOMMENDATION"
	CriteriaNote           CriteriaType = "NOTE"
)

// Score bounds. A score of ScoreUnrated means the criterion has not been rated yet.
const (
	ScoreUnrated = 0
	MinScore     = 1
	MaxScore     = 5
)

// Valid reports whether t is one of the known criteria types
func (t CriteriaType) Valid() bool {
	switch t {
	case CriteriaStrength, CriteriaWeakness, CriteriaRecommendation, CriteriaNote:
		return true
	}
	return false
}

// Criterion is a single scorable attribute of a candidate evaluation
type Criterion struct {
	ID    string       `json:"id"`
	Text  string       `json:"text"`
	Type  CriteriaType `json:"type"`
	Score int          `json:"score"` // 0 for unrated, 1-5 for rated
}

// Rated reports whether the criterion carries a user score
func (c Criterion) Rated() bool {
	return c.Score > ScoreUnrated
}

// Candidate is one reviewee with an ordered list of criteria
type Candidate struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	PositionRecommendation string      `json:"positionRecommendation,omitempty"`
	Criteria               []Criterion `json:"criteria"`
}

// Clone returns a copy of the candidate that shares no criteria storage with c
func (c Candidate) Clone() Candidate {
	out := c
	if c.Criteria != nil {
		out.Criteria = make([]Criterion, len(c.Criteria))
		copy(out.Criteria, c.Criteria)
	}
	return out
}
