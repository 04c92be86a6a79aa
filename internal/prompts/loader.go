// Package prompts holds the texts sent to the generative model and the
// sample reference notes, embedded from evaluation.json.
package prompts

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	_ "embed"
)

//go:embed evaluation.json
var evaluationJSON []byte

// Key names one entry of evaluation.json
type Key string

// Prompt keys. Every key listed in Keys must be present in the file.
const (
	CriteriaTemplate          Key = "criteria-template"
	CriteriaTemplateReference Key = "criteria-template-reference"
	ParseReviews              Key = "parse-reviews"
	ParseReviewsInput         Key = "parse-reviews-input"
	ParseReviewsSystem        Key = "parse-reviews-system"
	SampleReference           Key = "sample-reference"
)

// Keys returns every known key in sorted order
func Keys() []Key {
	return []Key{
		CriteriaTemplate,
		CriteriaTemplateReference,
		ParseReviews,
		ParseReviewsInput,
		ParseReviewsSystem,
		SampleReference,
	}
}

var load = sync.OnceValues(func() (map[Key]string, error) {
	return parse(evaluationJSON)
})

// parse decodes a prompt file and checks that no known key is missing or blank
func parse(data []byte) (map[Key]string, error) {
	var entries map[Key]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file: %w", err)
	}

	var missing []string
	for _, key := range Keys() {
		if strings.TrimSpace(entries[key]) == "" {
			missing = append(missing, string(key))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("prompt file is missing %s", strings.Join(missing, ", "))
	}
	return entries, nil
}

// Get returns the text stored under key.
func Get(key Key) (string, error) {
	entries, err := load()
	if err != nil {
		return "", err
	}

	text, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return text, nil
}

// MustGet is Get for the keys declared above, which parse guarantees.
func MustGet(key Key) string {
	text, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// Fill returns the prompt under key with {{.Name}} placeholders replaced.
func Fill(key Key, data map[string]string) string {
	return Format(MustGet(key), data)
}

// Format replaces placeholders of the form {{.Key}} with values from data.
// Unknown placeholders are left untouched and values are not rescanned.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for name, value := range data {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
