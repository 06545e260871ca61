package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"builtinai/internal/store"
	"builtinai/internal/summary"
	"builtinai/pkg/types"
)

func newTestMux(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := summary.New(summary.Config{ModelsDir: dir, Store: store.NewMemoryStore(), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return NewMux(svc), dir
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("json: %v body=%s", err, w.Body.String())
	}
}

func TestModelsHandler(t *testing.T) {
	r, _ := newTestMux(t)
	w := do(t, r, http.MethodGet, "/models", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.ModelsResponse
	decode(t, w, &body)
	if len(body.Models) != 3 || body.Models[0].Name != "gemma3:1b" {
		t.Fatalf("unexpected models: %+v", body.Models)
	}
}

func TestModelHandler(t *testing.T) {
	r, _ := newTestMux(t)
	w := do(t, r, http.MethodGet, "/models/gemma3:4b", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var m types.ModelDef
	decode(t, w, &m)
	if m.GGUFFile != "gemma-3-4b-it-Q4_K_M.gguf" {
		t.Fatalf("unexpected model: %+v", m)
	}
}

func TestModelHandler_NotFound(t *testing.T) {
	r, _ := newTestMux(t)
	w := do(t, r, http.MethodGet, "/models/nonexistent:1b", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var e types.ErrorResponse
	decode(t, w, &e)
	if e.Code != http.StatusNotFound || !strings.Contains(e.Error, "nonexistent:1b") {
		t.Fatalf("unexpected error body: %+v", e)
	}
}

func TestDefaultAndRecommended(t *testing.T) {
	r, _ := newTestMux(t)
	var m types.ModelDef
	decode(t, do(t, r, http.MethodGet, "/models/default", ""), &m)
	if m.Name != "gemma3:1b" {
		t.Fatalf("default=%q", m.Name)
	}
	decode(t, do(t, r, http.MethodGet, "/models/recommended?ram_mb=4096", ""), &m)
	if m.Name != "gemma3:4b" {
		t.Fatalf("recommended=%q", m.Name)
	}
	if w := do(t, r, http.MethodGet, "/models/recommended?ram_mb=-1", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestModelPathHandler(t *testing.T) {
	r, dir := newTestMux(t)
	w := do(t, r, http.MethodGet, "/models/gemma3:1b/path", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ModelPathResponse
	decode(t, w, &body)
	if body.Name != "gemma3:1b" || body.Path != filepath.Join(dir, "gemma-3-1b-it-Q8_0.gguf") {
		t.Fatalf("unexpected body: %+v", body)
	}
	if w := do(t, r, http.MethodGet, "/models/x:y/path", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	r, dir := newTestMux(t)
	w := do(t, r, http.MethodGet, "/models/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ModelStatusResponse
	decode(t, w, &body)
	if body.ModelsDir != dir || len(body.Models) != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestTemplatesAndPrompt(t *testing.T) {
	r, _ := newTestMux(t)
	var tl types.TemplatesResponse
	decode(t, do(t, r, http.MethodGet, "/templates", ""), &tl)
	if len(tl.Templates) != 4 {
		t.Fatalf("templates=%v", tl.Templates)
	}

	w := do(t, r, http.MethodPost, "/prompt", `{"template":"chatml","system_prompt":"S","user_prompt":"U"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var pr types.PromptResponse
	decode(t, w, &pr)
	if pr.Prompt != "<|im_start|>system\nS<|im_end|>\n<|im_start|>user\nU<|im_end|>\n<|im_start|>assistant\n" {
		t.Fatalf("prompt=%q", pr.Prompt)
	}
}

func TestPromptErrors(t *testing.T) {
	r, _ := newTestMux(t)
	cases := []struct {
		body string
		ct   string
		want int
	}{
		{`{"template":"unknown-template","system_prompt":"a","user_prompt":"b"}`, "application/json", http.StatusBadRequest},
		{`{"system_prompt":"a"}`, "application/json", http.StatusBadRequest},
		{`not-json`, "application/json", http.StatusBadRequest},
		{`{"template":"gemma3"}`, "text/plain", http.StatusUnsupportedMediaType},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/prompt", bytes.NewBufferString(c.body))
		req.Header.Set("Content-Type", c.ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != c.want {
			t.Fatalf("%s: status=%d want %d", c.body, w.Code, c.want)
		}
	}
}

func TestPromptBodyLimit(t *testing.T) {
	SetMaxBodyBytes(16)
	defer SetMaxBodyBytes(0)
	r, _ := newTestMux(t)
	w := do(t, r, http.MethodPost, "/prompt", `{"template":"gemma3","system_prompt":"`+strings.Repeat("x", 64)+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPlanHandler(t *testing.T) {
	r, dir := newTestMux(t)
	w := do(t, r, http.MethodPost, "/plan", `{"model":"gemma3:1b","system_prompt":"SYS","user_prompt":"USR"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var gr types.GenerationRequest
	decode(t, w, &gr)
	if gr.ModelPath != filepath.Join(dir, "gemma-3-1b-it-Q8_0.gguf") || gr.MaxTokens != 2048 || gr.TopK != 64 {
		t.Fatalf("unexpected plan: %+v", gr)
	}
	if !strings.HasSuffix(gr.Prompt, "<start_of_turn>model\n") {
		t.Fatalf("prompt=%q", gr.Prompt)
	}
	if w := do(t, r, http.MethodPost, "/plan", `{"model":"nope:1b","user_prompt":"U"}`); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/plan", `{"user_prompt":""}`); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestSelectionHandlers(t *testing.T) {
	r, _ := newTestMux(t)
	var sel types.SelectionResponse
	decode(t, do(t, r, http.MethodGet, "/selection", ""), &sel)
	if !sel.Fallback || sel.Model.Name != "gemma3:1b" {
		t.Fatalf("initial selection: %+v", sel)
	}
	w := do(t, r, http.MethodPut, "/selection", `{"model":"mistral:7b"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	decode(t, do(t, r, http.MethodGet, "/selection", ""), &sel)
	if sel.Fallback || sel.Model.Name != "mistral:7b" {
		t.Fatalf("stored selection: %+v", sel)
	}
	if w := do(t, r, http.MethodPut, "/selection", `{"model":"nope:1b"}`); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if w := do(t, r, http.MethodPut, "/selection", `{"model":" "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthAndReady(t *testing.T) {
	r, _ := newTestMux(t)
	if w := do(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("healthz=%d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/readyz", ""); w.Code != http.StatusOK || w.Body.String() != "ready" {
		t.Fatalf("readyz=%d %q", w.Code, w.Body.String())
	}
}

type brokenStore struct{ store.MemoryStore }

func (*brokenStore) Selection(context.Context, string) (store.Selection, error) {
	return store.Selection{}, errors.New("database is locked")
}

func TestStoreFailureMaps500AndNotReady(t *testing.T) {
	svc, err := summary.New(summary.Config{ModelsDir: t.TempDir(), Store: &brokenStore{}, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	r := NewMux(svc)
	if w := do(t, r, http.MethodGet, "/selection", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("selection=%d", w.Code)
	}
	w := do(t, r, http.MethodGet, "/readyz", "")
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("readyz=%d %q", w.Code, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	SetCORSOptions(true, []string{"http://tauri.localhost"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	r, _ := newTestMux(t)
	req := httptest.NewRequest(http.MethodOptions, "/models", nil)
	req.Header.Set("Origin", "http://tauri.localhost")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://tauri.localhost" {
		t.Fatalf("allow-origin=%q", got)
	}
}
