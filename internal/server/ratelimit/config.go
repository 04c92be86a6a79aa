package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity, Limit when 0
}

// LoadConfig builds the limiter configuration from environment variables.
// aiLimitPerHour bounds the endpoints that call the generative AI service.
func LoadConfig(aiLimitPerHour int) *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(aiLimitPerHour),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits of the evaluation API.
// Reads fall through to the default limit; /health is never limited.
func DefaultEndpointConfigs(aiLimitPerHour int) []EndpointConfig {
	if aiLimitPerHour <= 0 {
		aiLimitPerHour = 30
	}
	return []EndpointConfig{
		// AI-backed operations
		{Path: "/evaluation/generate", Method: "POST", Limit: aiLimitPerHour, Window: time.Hour, Burst: 3},
		{Path: "/reviews/parse", Method: "POST", Limit: aiLimitPerHour, Window: time.Hour, Burst: 3},

		// Score edits arrive in quick bursts from the form
		{Path: "/evaluation/candidates/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 60},
		{Path: "/evaluation/reset", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
