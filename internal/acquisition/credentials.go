package acquisition

import (
	"os"
	"strings"
)

// APIKeyEnvVars lists the environment variables consulted for the Gemini key, in order
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// EnvAPIKey returns the first non-empty API key from the environment
func EnvAPIKey() string {
	for _, name := range APIKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
