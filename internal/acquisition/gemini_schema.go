package acquisition

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/intern-eval/internal/types"
)

// templateResponseSchema constrains Gemini output for criteria synthesis
func templateResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"criteria": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id": {Type: genai.TypeString},
						"text": {
							Type:        genai.TypeString,
							Description: "The standardized criteria label (e.g. 'Kỹ năng Java', 'Thái độ làm việc')",
						},
						"type":  {Type: genai.TypeString, Enum: []string{string(types.CriteriaStrength)}},
						"score": {Type: genai.TypeNumber, Description: "Always 0"},
					},
					Required: []string{"id", "text", "type", "score"},
				},
			},
		},
	}
}

// reviewsResponseSchema constrains Gemini output for raw review parsing
func reviewsResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"candidates": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":                     {Type: genai.TypeString},
						"name":                   {Type: genai.TypeString},
						"positionRecommendation": {Type: genai.TypeString},
						"criteria": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"id": {Type: genai.TypeString},
									"text": {
										Type:        genai.TypeString,
										Description: "The specific observation or behavior to evaluate.",
									},
									"type": {
										Type: genai.TypeString,
										Enum: []string{string(types.CriteriaStrength), string(types.CriteriaWeakness)},
									},
									"score": {Type: genai.TypeNumber, Description: "Initialize to 0"},
								},
								Required: []string{"id", "text", "type", "score"},
							},
						},
					},
					Required: []string{"id", "name", "criteria"},
				},
			},
		},
	}
}
