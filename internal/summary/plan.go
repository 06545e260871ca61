package summary

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"builtinai/internal/prompt"
	"builtinai/internal/registry"
	"builtinai/pkg/types"
)

var plansTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "builtinai",
		Subsystem: "summary",
		Name:      "plans_total",
		Help:      "Generation requests assembled, by model and result",
	},
	[]string{"model", "result"},
)

func init() {
	prometheus.MustRegister(plansTotal)
}

// invalidRequestError marks caller mistakes (400).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string   { return e.msg }
func (e invalidRequestError) StatusCode() int { return http.StatusBadRequest }

// Plan assembles the request the inference sidecar needs. With an empty model
// name the stored selection (or the default) is used.
func (s *Service) Plan(ctx context.Context, req types.PlanRequest) (types.GenerationRequest, error) {
	if strings.TrimSpace(req.UserPrompt) == "" {
		return types.GenerationRequest{}, invalidRequestError{msg: "user_prompt is required"}
	}
	if req.MaxTokens < 0 {
		return types.GenerationRequest{}, invalidRequestError{msg: "max_tokens must not be negative"}
	}

	var m types.ModelDef
	if req.Model == "" {
		sel, _, err := s.SelectedModel(ctx)
		if err != nil {
			plansTotal.WithLabelValues("", "error").Inc()
			return types.GenerationRequest{}, fmt.Errorf("plan: %w", err)
		}
		m = sel
	} else {
		found, err := registry.GetModel(req.Model)
		if err != nil {
			plansTotal.WithLabelValues("unknown", "not_found").Inc()
			return types.GenerationRequest{}, fmt.Errorf("plan: %w", err)
		}
		m = found
	}

	text, err := prompt.FormatPrompt(m.Template, req.SystemPrompt, req.UserPrompt)
	if err != nil {
		plansTotal.WithLabelValues(m.Name, "bad_template").Inc()
		return types.GenerationRequest{}, fmt.Errorf("plan %s: %w", m.Name, err)
	}
	path, err := registry.ResolveModelPath(s.modelsDir, m.Name)
	if err != nil {
		return types.GenerationRequest{}, fmt.Errorf("plan: %w", err)
	}

	maxTokens := s.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	plansTotal.WithLabelValues(m.Name, "ok").Inc()
	s.log.Debug().Str("model", m.Name).Int("prompt_bytes", len(text)).Msg("generation planned")
	return types.GenerationRequest{
		Model:              m.Name,
		ModelPath:          path,
		Prompt:             text,
		MaxTokens:          maxTokens,
		ContextSize:        m.ContextSize,
		LayerCount:         m.LayerCount,
		Temperature:        m.Sampling.Temperature,
		TopK:               m.Sampling.TopK,
		TopP:               m.Sampling.TopP,
		Stop:               append([]string(nil), m.Sampling.StopTokens...),
		TimeoutSeconds:     int64(s.timeout.Seconds()),
		IdleTimeoutSeconds: int64(s.idleTimeout.Seconds()),
	}, nil
}
