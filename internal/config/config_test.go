package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"port": 9090,
		"model": "gemini-2.5-pro",
		"role": "Fresher",
		"bare_progress": true,
		"log_level": "debug"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, "Fresher", cfg.Role)
	assert.True(t, cfg.BareProgress)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
port: 7000
ai_limit_per_hour: 5
role: "Intern, Backend"
output_dir: exports
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 5, cfg.AILimitPerHour)
	assert.Equal(t, "Intern, Backend", cfg.Role)
	assert.Equal(t, "exports", cfg.OutputDir)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yml", "port: [1, 2"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{name: "defaults", cfg: Default()},
		{name: "empty", cfg: Config{}},
		{name: "port out of range", cfg: Config{Port: 70000}, errMsg: "'port'"},
		{name: "negative limit", cfg: Config{AILimitPerHour: -1}, errMsg: "'ai_limit_per_hour'"},
		{name: "multi-line role", cfg: Config{Role: "a\nb"}, errMsg: "'role'"},
		{name: "unknown level", cfg: Config{LogLevel: "loud"}, errMsg: "'log_level'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Port: 9000, Role: "Fresher"}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "Fresher", merged.Role)
	assert.Equal(t, 30, merged.AILimitPerHour)
	assert.Equal(t, ".", merged.OutputDir)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 0, cfg.AILimitPerHour, "receiver must not be modified")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("EVAL_ROLE", "Member")
	t.Setenv("EVAL_OUTPUT_DIR", "/tmp/out")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Model)
	assert.Equal(t, "Member", cfg.Role)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestApplyEnv_IgnoresBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, 8080, cfg.Port)
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, (&Config{LogLevel: "debug"}).ZapLevel())
	assert.Equal(t, zapcore.InfoLevel, (&Config{}).ZapLevel())
	assert.Equal(t, zapcore.InfoLevel, (&Config{LogLevel: "bogus"}).ZapLevel())
}
