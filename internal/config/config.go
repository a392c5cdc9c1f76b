// Package config loads tocproc configuration from built-in defaults, an
// optional YAML file and TOCPROC_* environment variables, in that order.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOCPROC_"

const maxConfigFileSize = 1024 * 1024

//go:embed defaults.yaml
var defaults []byte

type Config struct {
	Log     LogConfig     `koanf:"log"`
	Extract ExtractConfig `koanf:"extract"`
	AI      AIConfig      `koanf:"ai"`
}

type LogConfig struct {
	// Level is one of none, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is console or json.
	Format string `koanf:"format"`
}

type ExtractConfig struct {
	TocPages         int  `koanf:"toc_pages"`
	NormalizeLeaders bool `koanf:"normalize_leaders"`
}

type AIConfig struct {
	// Provider is off or gemini.
	Provider string `koanf:"provider"`
	Model    string `koanf:"model"`
	APIKey   string `koanf:"api_key"`
}

// Load reads configuration. An empty path skips the YAML file.
//
// Environment variables map onto keys by splitting on the first
// underscore after the prefix:
//
//	TOCPROC_LOG_LEVEL        -> log.level
//	TOCPROC_EXTRACT_TOC_PAGES -> extract.toc_pages
//	TOCPROC_AI_API_KEY       -> ai.api_key
//
// When no key is configured GOOGLE_API_KEY is used.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("GOOGLE_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	parts := strings.SplitN(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "none", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be none, debug, info, warn or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be console or json)", c.Log.Format)
	}
	if c.Extract.TocPages < 1 {
		return fmt.Errorf("invalid extract.toc_pages: %d (must be positive)", c.Extract.TocPages)
	}
	switch c.AI.Provider {
	case "off":
	case "gemini":
		if c.AI.APIKey == "" {
			return errors.New("ai.api_key (or GOOGLE_API_KEY) required when ai.provider is gemini")
		}
	default:
		return fmt.Errorf("invalid ai.provider %q (must be off or gemini)", c.AI.Provider)
	}
	return nil
}
