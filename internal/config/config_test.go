package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_API_KEY", "")
	for _, k := range []string{
		"TOCPROC_LOG_LEVEL", "TOCPROC_LOG_FORMAT",
		"TOCPROC_EXTRACT_TOC_PAGES", "TOCPROC_EXTRACT_NORMALIZE_LEADERS",
		"TOCPROC_AI_PROVIDER", "TOCPROC_AI_MODEL", "TOCPROC_AI_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tocproc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 16, cfg.Extract.TocPages)
	assert.True(t, cfg.Extract.NormalizeLeaders)
	assert.Equal(t, "off", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `log:
  level: debug
  format: json
extract:
  toc_pages: 4
  normalize_leaders: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Extract.TocPages)
	assert.False(t, cfg.Extract.NormalizeLeaders)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model, "unset keys keep defaults")
}

func TestLoad_EnvironmentOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `log:
  level: debug
extract:
  toc_pages: 4
`)
	t.Setenv("TOCPROC_LOG_LEVEL", "warn")
	t.Setenv("TOCPROC_EXTRACT_TOC_PAGES", "32")
	t.Setenv("TOCPROC_EXTRACT_NORMALIZE_LEADERS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 32, cfg.Extract.TocPages)
	assert.False(t, cfg.Extract.NormalizeLeaders)
}

func TestLoad_APIKey(t *testing.T) {
	t.Run("google fallback", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GOOGLE_API_KEY", "from-google")
		t.Setenv("TOCPROC_AI_PROVIDER", "gemini")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "from-google", cfg.AI.APIKey)
	})

	t.Run("explicit key wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GOOGLE_API_KEY", "from-google")
		t.Setenv("TOCPROC_AI_API_KEY", "explicit")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "explicit", cfg.AI.APIKey)
	})

	t.Run("gemini without key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOCPROC_AI_PROVIDER", "gemini")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_key")
	})
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(t.TempDir())
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:     LogConfig{Level: "info", Format: "console"},
			Extract: ExtractConfig{TocPages: 16},
			AI:      AIConfig{Provider: "off"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"none level", func(c *Config) { c.Log.Level = "none" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"zero pages", func(c *Config) { c.Extract.TocPages = 0 }, true},
		{"bad provider", func(c *Config) { c.AI.Provider = "openai" }, true},
		{"gemini with key", func(c *Config) { c.AI.Provider = "gemini"; c.AI.APIKey = "k" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("TOCPROC_LOG_LEVEL"))
	assert.Equal(t, "extract.toc_pages", envKey("TOCPROC_EXTRACT_TOC_PAGES"))
	assert.Equal(t, "ai.api_key", envKey("TOCPROC_AI_API_KEY"))
	assert.Equal(t, "debug", envKey("TOCPROC_DEBUG"))
}
