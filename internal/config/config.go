// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config represents settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Server
	Port           int `json:"port,omitempty" yaml:"port,omitempty"`                         // HTTP listen port
	AILimitPerHour int `json:"ai_limit_per_hour,omitempty" yaml:"ai_limit_per_hour,omitempty"` // Requests per client per hour on AI endpoints

	// Acquisition
	Model string `json:"model,omitempty" yaml:"model,omitempty"` // Gemini model override

	// Export
	Role         string `json:"role,omitempty" yaml:"role,omitempty"`                   // Role column label
	BareProgress bool   `json:"bare_progress,omitempty" yaml:"bare_progress,omitempty"` // Progress without "%"
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`       // CSV output directory

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"` // debug, info, warn or error
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:           8080,
		AILimitPerHour: 30,
		OutputDir:      ".",
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.AILimitPerHour < 0 {
		return fmt.Errorf("config error: 'ai_limit_per_hour' must be non-negative")
	}
	if strings.ContainsAny(c.Role, "\r\n") {
		return fmt.Errorf("config error: 'role' must be a single line")
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level' %q", c.LogLevel)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AILimitPerHour == 0 {
		result.AILimitPerHour = defaults.AILimitPerHour
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Role == "" {
		result.Role = defaults.Role
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Bools cannot distinguish unset from false, so CLI flags decide them

	return result
}

// ApplyEnv overrides fields from PORT, GEMINI_MODEL, EVAL_ROLE, EVAL_OUTPUT_DIR and LOG_LEVEL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("EVAL_ROLE"); v != "" {
		c.Role = v
	}
	if v := os.Getenv("EVAL_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// ZapLevel returns the configured log level, info when unset.
func (c *Config) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
