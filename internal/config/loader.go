package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"builtinai/internal/registry"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr                  string   `json:"addr" yaml:"addr" toml:"addr"`
	AppDataDir            string   `json:"app_data_dir" yaml:"app_data_dir" toml:"app_data_dir"`
	DBPath                string   `json:"db_path" yaml:"db_path" toml:"db_path"`
	DefaultModel          string   `json:"default_model" yaml:"default_model" toml:"default_model"`
	MaxTokens             int      `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	IdleTimeoutSecs       int64    `json:"idle_timeout_secs" yaml:"idle_timeout_secs" toml:"idle_timeout_secs"`
	GenerationTimeoutSecs int64    `json:"generation_timeout_secs" yaml:"generation_timeout_secs" toml:"generation_timeout_secs"`
	LogLevel              string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins           []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes          int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ModelsDir is where built-in model files are expected.
func (c Config) ModelsDir() string {
	return registry.ModelsDirectory(c.AppDataDir)
}
