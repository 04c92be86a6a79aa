package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/intern-eval/internal/types"
)

func candidateWithScores(scores ...int) types.Candidate {
	c := types.Candidate{ID: "cand-0", Name: "Nam"}
	for i, s := range scores {
		c.Criteria = append(c.Criteria, types.Criterion{
			ID:    string(rune('a' + i)),
			Text:  "criterion",
			Type:  types.CriteriaStrength,
			Score: s,
		})
	}
	return c
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   string
	}{
		{name: "nothing rated", scores: []int{0, 0, 0}, want: "0"},
		{name: "no criteria", scores: nil, want: "0"},
		{name: "unrated excluded", scores: []int{5, 5, 0}, want: "5.0"},
		{name: "repeating decimal", scores: []int{4, 4, 5}, want: "4.3"},
		{name: "rounds down", scores: []int{1, 1, 2}, want: "1.3"},
		{name: "exact half rounds up", scores: []int{5, 4, 4, 4}, want: "4.3"},
		{name: "exact three quarters rounds up", scores: []int{5, 5, 5, 4}, want: "4.8"},
		{name: "single rating", scores: []int{0, 3}, want: "3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Average(candidateWithScores(tt.scores...)))
		})
	}
}

func TestFormatMean_NonBinaryHalfway(t *testing.T) {
	// 23/20 is not representable; the nearest double sits just below 1.15
	assert.Equal(t, "1.1", formatMean(23, 20))
	// 21/20 is stored just above 1.05
	assert.Equal(t, "1.1", formatMean(21, 20))
	// 25/20 reduces to 5/4, an exact half-way value
	assert.Equal(t, "1.3", formatMean(25, 20))
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{name: "nothing rated", scores: []int{0, 0, 0}, want: 0},
		{name: "two of three", scores: []int{5, 5, 0}, want: 67},
		{name: "one of three", scores: []int{0, 2, 0}, want: 33},
		{name: "one of eight rounds half up", scores: []int{1, 0, 0, 0, 0, 0, 0, 0}, want: 13},
		{name: "complete", scores: []int{1, 2, 3}, want: 100},
		{name: "no criteria", scores: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(candidateWithScores(tt.scores...)))
		})
	}
}

func TestRatedCount(t *testing.T) {
	assert.Equal(t, 2, RatedCount(candidateWithScores(5, 0, 1)))
	assert.Equal(t, 0, RatedCount(candidateWithScores()))
}
