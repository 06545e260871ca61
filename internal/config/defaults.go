package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"builtinai/internal/common/fsutil"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultAddr      = ":8089"
	DefaultMaxTokens = 2048
	// DefaultIdleTimeout is how long the sidecar may sit idle before it is stopped.
	DefaultIdleTimeout = 300 * time.Second
	// GenerationTimeout bounds how long a caller waits for one response.
	GenerationTimeout = 300 * time.Second
	DefaultLogLevel   = "info"

	// DefaultMaxBodyBytes caps JSON request bodies on the HTTP API.
	DefaultMaxBodyBytes = 1 << 20
)

// Environment overrides.
const (
	EnvAddr        = "BUILTINAI_ADDR"
	EnvAppDataDir  = "BUILTINAI_APP_DATA_DIR"
	EnvLogLevel    = "BUILTINAI_LOG_LEVEL"
	EnvIdleTimeout = "LLAMA_IDLE_TIMEOUT"
)

// ApplyEnv overlays environment variables onto cfg. Env wins over file values.
func ApplyEnv(cfg Config) (Config, error) {
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvAppDataDir); v != "" {
		cfg.AppDataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvIdleTimeout)); v != "" {
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil || secs <= 0 {
			return cfg, fmt.Errorf("%s: invalid seconds %q", EnvIdleTimeout, v)
		}
		cfg.IdleTimeoutSecs = secs
	}
	return cfg, nil
}

// Defaults fills unset fields and expands '~' in paths.
func Defaults(cfg Config) (Config, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.AppDataDir == "" {
		cfg.AppDataDir = DefaultAppDataDir()
	}
	dir, err := fsutil.ExpandHome(cfg.AppDataDir)
	if err != nil {
		return cfg, err
	}
	cfg.AppDataDir = dir
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.AppDataDir, "builtinai.db")
	}
	if cfg.DBPath, err = fsutil.ExpandHome(cfg.DBPath); err != nil {
		return cfg, err
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.IdleTimeoutSecs <= 0 {
		cfg.IdleTimeoutSecs = int64(DefaultIdleTimeout / time.Second)
	}
	if cfg.GenerationTimeoutSecs <= 0 {
		cfg.GenerationTimeoutSecs = int64(GenerationTimeout / time.Second)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return cfg, nil
}

// Resolve loads path (if non-empty), overlays the environment, applies
// overrides (command-line flags) and only then fills defaults, so derived
// paths follow the final app data dir without clobbering explicit ones.
func Resolve(path string, overrides ...func(*Config)) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	cfg, err := ApplyEnv(cfg)
	if err != nil {
		return cfg, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	return Defaults(cfg)
}
