// Package llm wraps the generative model behind a small structured-output
// client. Call sites pick a tier; the tier table maps it to a model name.
package llm

import (
	"maps"
	"os"
	"strconv"
)

// ModelTier selects a model by workload rather than by name
type ModelTier string

// TierStandard extracts criteria templates and parses reviews
const TierStandard ModelTier = "standard"

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultModel serves TierStandard unless overridden
const DefaultModel = "gemini-3-flash-preview"

// Environment overrides read by ConfigFromEnv
const (
	ModelEnvVar       = "GEMINI_MODEL"
	TemperatureEnvVar = "GEMINI_TEMPERATURE"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature is left to the model default when nil
	Temperature *float32
}

// DefaultConfig returns the Gemini configuration with the default model
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierStandard: DefaultModel},
	}
}

// ConfigFromEnv applies GEMINI_MODEL and GEMINI_TEMPERATURE to the defaults.
// An unparsable or out-of-range temperature is ignored.
func ConfigFromEnv() *Config {
	config := DefaultConfig()
	if model := os.Getenv(ModelEnvVar); model != "" {
		config = config.WithModel(TierStandard, model)
	}
	if raw := os.Getenv(TemperatureEnvVar); raw != "" {
		if t, err := strconv.ParseFloat(raw, 32); err == nil && t >= 0 && t <= 2 {
			temperature := float32(t)
			config.Temperature = &temperature
		}
	}
	return config
}

// GetModel returns the model for a tier, falling back to the standard tier
func (c *Config) GetModel(tier ModelTier) string {
	if model := c.Models[tier]; model != "" {
		return model
	}
	return c.Models[TierStandard]
}

// WithModel returns a copy of c with model assigned to tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = maps.Clone(c.Models)
	if next.Models == nil {
		next.Models = make(map[ModelTier]string, 1)
	}
	next.Models[tier] = model
	return &next
}
