// Package summary composes the model registry, the prompt templates and the
// selection store into the operations the summary pipeline and the HTTP API use.
// It prepares generation requests for the external inference sidecar but never
// runs inference itself.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"builtinai/internal/prompt"
	"builtinai/internal/registry"
	"builtinai/internal/store"
	"builtinai/pkg/types"
)

// Config tunes a Service.
type Config struct {
	ModelsDir         string
	DefaultModel      string // overrides the catalog default when set
	MaxTokens         int
	GenerationTimeout time.Duration
	IdleTimeout       time.Duration // how long the sidecar keeps a model loaded
	Store             store.Store
	Logger            zerolog.Logger
}

// Service is safe for concurrent use if its Store is.
type Service struct {
	modelsDir    string
	defaultModel types.ModelDef
	maxTokens    int
	timeout      time.Duration
	idleTimeout  time.Duration
	store        store.Store
	log          zerolog.Logger
}

// New validates cfg and builds a Service.
func New(cfg Config) (*Service, error) {
	if cfg.ModelsDir == "" {
		return nil, errors.New("summary: models dir is required")
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	def := registry.DefaultModel()
	if cfg.DefaultModel != "" {
		m, err := registry.GetModel(cfg.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("summary: default model: %w", err)
		}
		def = m
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = 300 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 300 * time.Second
	}
	return &Service{
		modelsDir:    cfg.ModelsDir,
		defaultModel: def,
		maxTokens:    cfg.MaxTokens,
		timeout:      cfg.GenerationTimeout,
		idleTimeout:  cfg.IdleTimeout,
		store:        cfg.Store,
		log:          cfg.Logger.With().Str("component", "summary").Logger(),
	}, nil
}

func (s *Service) ListModels() []types.ModelDef { return registry.ListModels() }

func (s *Service) Model(name string) (types.ModelDef, error) { return registry.GetModel(name) }

// DefaultModel is the configured default, or the first catalog entry.
func (s *Service) DefaultModel() types.ModelDef { return s.defaultModel }

func (s *Service) Recommend(availableRAMMB uint64) types.ModelDef {
	return registry.Recommend(availableRAMMB)
}

func (s *Service) ModelPath(name string) (string, error) {
	return registry.ResolveModelPath(s.modelsDir, name)
}

// Status inspects the models directory.
func (s *Service) Status() (types.ModelStatusResponse, error) {
	res, err := registry.Scan(s.modelsDir)
	if err != nil {
		return types.ModelStatusResponse{}, err
	}
	return types.ModelStatusResponse{ModelsDir: res.Dir, Models: res.Models, Unknown: res.Unknown}, nil
}

func (s *Service) Templates() []string { return prompt.Names() }

func (s *Service) FormatPrompt(req types.PromptRequest) (string, error) {
	return prompt.FormatPrompt(req.Template, req.SystemPrompt, req.UserPrompt)
}

// SelectedModel returns the stored choice re-resolved through the registry.
// fallback is true when nothing usable is stored and the default was returned.
func (s *Service) SelectedModel(ctx context.Context) (m types.ModelDef, fallback bool, err error) {
	sel, err := s.store.Selection(ctx, store.ProviderBuiltinAI)
	if errors.Is(err, store.ErrNoSelection) {
		return s.defaultModel, true, nil
	}
	if err != nil {
		return types.ModelDef{}, false, err
	}
	m, err = registry.GetModel(sel.Model)
	if err != nil {
		s.log.Warn().Str("model", sel.Model).Msg("stored model no longer in catalog, using default")
		return s.defaultModel, true, nil
	}
	return m, false, nil
}

// Select stores name as the chosen model. Unknown names are rejected.
func (s *Service) Select(ctx context.Context, name string) (types.ModelDef, error) {
	m, err := registry.GetModel(name)
	if err != nil {
		return types.ModelDef{}, err
	}
	if err := s.store.SetSelection(ctx, store.ProviderBuiltinAI, m.Name); err != nil {
		return types.ModelDef{}, err
	}
	s.log.Info().Str("model", m.Name).Msg("model selected")
	return m, nil
}

// Ready reports whether the selection store answers.
func (s *Service) Ready() bool {
	_, err := s.store.Selection(context.Background(), store.ProviderBuiltinAI)
	return err == nil || errors.Is(err, store.ErrNoSelection)
}
