package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"builtinai/internal/config"
	"builtinai/internal/httpapi"
	"builtinai/internal/store"
	"builtinai/internal/summary"
)

// newAppDataDir creates an app data root whose models directory holds the
// given .gguf files.
func newAppDataDir(t *testing.T, files ...string) (config.Config, string) {
	t.Helper()
	cfg, err := config.Defaults(config.Config{AppDataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	modelsDir := cfg.ModelsDir()
	if err := os.MkdirAll(modelsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, f := range files {
		p := filepath.Join(modelsDir, f)
		if err := os.WriteFile(p, []byte("GGUF"), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return cfg, modelsDir
}

// newServer wires the sqlite store, the summary service and the HTTP mux the
// same way `builtinai serve` does.
func newServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	svc, err := summary.New(summary.Config{
		ModelsDir:         cfg.ModelsDir(),
		DefaultModel:      cfg.DefaultModel,
		MaxTokens:         cfg.MaxTokens,
		GenerationTimeout: time.Duration(cfg.GenerationTimeoutSecs) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeoutSecs) * time.Second,
		Store:             st,
		Logger:            zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

func httpDo(t *testing.T, method, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	out, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, out
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	return httpDo(t, http.MethodGet, url, nil)
}
