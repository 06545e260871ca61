package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"builtinai/internal/config"
	"builtinai/internal/prompt"
	"builtinai/internal/registry"
	"builtinai/internal/store"
	"builtinai/internal/summary"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once PersistentPreRunE has run.
type app struct {
	out io.Writer
	cfg config.Config
	log zerolog.Logger

	configPath string
	appDataDir string
	logLevel   string
	logFormat  string
	logOut     io.Writer
}

func newRootCmd(out, logOut io.Writer) *cobra.Command {
	a := &app{out: out, logOut: logOut}
	root := &cobra.Command{
		Use:           "builtinai",
		Short:         "Built-in summary model catalog and prompt templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("BUILTINAI_CONFIG"), "Config file (.yaml, .json, .toml)")
	root.PersistentFlags().StringVar(&a.appDataDir, "app-data-dir", "", "Application data root (models live in <root>/models/summary)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error|off")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format: console|json")

	root.AddCommand(
		a.serveCmd(),
		a.modelsCmd(),
		a.templatesCmd(),
		a.promptCmd(),
		a.planCmd(),
		a.selectCmd(),
		a.validateCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Resolve(a.configPath, func(c *config.Config) {
		if a.appDataDir != "" {
			c.AppDataDir = a.appDataDir
		}
		if a.logLevel != "" {
			c.LogLevel = a.logLevel
		}
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg
	a.log = newLogger(a.logOut, cfg.LogLevel, a.logFormat)

	if err := registry.ValidateBuiltin(prompt.Known); err != nil {
		return fmt.Errorf("built-in catalog is invalid: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if level == "off" {
		lvl = zerolog.Disabled
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// openService opens the selection store and builds the summary service.
// The returned close func releases the store.
func (a *app) openService() (*summary.Service, func(), error) {
	st, err := store.OpenSQLite(a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	svc, err := summary.New(summary.Config{
		ModelsDir:         a.cfg.ModelsDir(),
		DefaultModel:      a.cfg.DefaultModel,
		MaxTokens:         a.cfg.MaxTokens,
		GenerationTimeout: time.Duration(a.cfg.GenerationTimeoutSecs) * time.Second,
		IdleTimeout:       time.Duration(a.cfg.IdleTimeoutSecs) * time.Second,
		Store:             st,
		Logger:            a.log,
	})
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return svc, func() { _ = st.Close() }, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
