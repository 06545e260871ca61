package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"builtinai/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.ModelDef
	Model(name string) (types.ModelDef, error)
	DefaultModel() types.ModelDef
	Recommend(availableRAMMB uint64) types.ModelDef
	ModelPath(name string) (string, error)
	Status() (types.ModelStatusResponse, error)
	Templates() []string
	FormatPrompt(req types.PromptRequest) (string, error)
	Plan(ctx context.Context, req types.PlanRequest) (types.GenerationRequest, error)
	SelectedModel(ctx context.Context) (types.ModelDef, bool, error)
	Select(ctx context.Context, name string) (types.ModelDef, error)
	Ready() bool
}

// NewMux builds the router for svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withBaseContext)
	r.Use(RequestLogger)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.ListModels()})
	})
	r.Get("/models/default", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.DefaultModel())
	})
	r.Get("/models/recommended", h.recommended)
	r.Get("/models/status", h.status)
	r.Get("/models/{name}", h.model)
	r.Get("/models/{name}/path", h.modelPath)

	r.Get("/templates", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.TemplatesResponse{Templates: svc.Templates()})
	})
	r.Post("/prompt", h.prompt)
	r.Post("/plan", h.plan)

	r.Get("/selection", h.selection)
	r.Put("/selection", h.setSelection)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// decodeJSON enforces the content type and body limit, then decodes into v.
// It writes the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies also land here; report 400 without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// @Summary Get one model
// @Param name path string true "model name, e.g. gemma3:1b"
// @Success 200 {object} types.ModelDef
// @Failure 404 {object} types.ErrorResponse
// @Router /models/{name} [get]
func (h *handlers) model(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Model(chi.URLParam(r, "name"))
	countLookup("model", err)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Resolve a model's file path
// @Param name path string true "model name"
// @Success 200 {object} types.ModelPathResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /models/{name}/path [get]
func (h *handlers) modelPath(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, err := h.svc.ModelPath(name)
	countLookup("path", err)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.ModelPathResponse{Name: name, Path: p})
}

// @Summary Recommend a model for the available RAM
// @Param ram_mb query int false "available RAM in MB"
// @Success 200 {object} types.ModelDef
// @Router /models/recommended [get]
func (h *handlers) recommended(w http.ResponseWriter, r *http.Request) {
	var ram uint64
	if v := r.URL.Query().Get("ram_mb"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "ram_mb must be a non-negative integer")
			return
		}
		ram = n
	}
	writeJSON(w, http.StatusOK, h.svc.Recommend(ram))
}

// @Summary Report which models are downloaded
// @Success 200 {object} types.ModelStatusResponse
// @Router /models/status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status()
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// @Summary Fill a prompt template
// @Accept json
// @Param body body types.PromptRequest true "template and prompts"
// @Success 200 {object} types.PromptResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /prompt [post]
func (h *handlers) prompt(w http.ResponseWriter, r *http.Request) {
	var req types.PromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Template == "" {
		writeJSONError(w, http.StatusBadRequest, "template is required")
		return
	}
	out, err := h.svc.FormatPrompt(req)
	countLookup("template", err)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.PromptResponse{Prompt: out})
}

// @Summary Assemble a generation request for the inference sidecar
// @Accept json
// @Param body body types.PlanRequest true "model and prompts"
// @Success 200 {object} types.GenerationRequest
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /plan [post]
func (h *handlers) plan(w http.ResponseWriter, r *http.Request) {
	var req types.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	gr, err := h.svc.Plan(r.Context(), req)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, gr)
}

// @Summary Current model selection
// @Success 200 {object} types.SelectionResponse
// @Router /selection [get]
func (h *handlers) selection(w http.ResponseWriter, r *http.Request) {
	m, fallback, err := h.svc.SelectedModel(r.Context())
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.SelectionResponse{Model: m, Fallback: fallback})
}

// @Summary Store the model selection
// @Accept json
// @Param body body types.SelectionRequest true "model name"
// @Success 200 {object} types.SelectionResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /selection [put]
func (h *handlers) setSelection(w http.ResponseWriter, r *http.Request) {
	var req types.SelectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Model) == "" {
		writeJSONError(w, http.StatusBadRequest, "model is required")
		return
	}
	m, err := h.svc.Select(r.Context(), req.Model)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.SelectionResponse{Model: m})
}
