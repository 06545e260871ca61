package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"builtinai/internal/registry"
	"builtinai/pkg/types"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, io.Discard)
	cmd.SetArgs(append([]string{"--app-data-dir", dataDir, "--log-level", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestModelsList_DefaultFirst(t *testing.T) {
	out, err := run(t, t.TempDir(), "models", "list")
	if err != nil {
		t.Fatalf("models list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("want header + 3 rows, got %q", out)
	}
	if !strings.HasPrefix(lines[1], "gemma3:1b (default)") {
		t.Fatalf("first row should be the default: %q", lines[1])
	}
}

func TestModelsList_JSON(t *testing.T) {
	out, err := run(t, t.TempDir(), "models", "list", "--json")
	if err != nil {
		t.Fatalf("models list --json: %v", err)
	}
	var resp types.ModelsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Models) != 3 || resp.Models[2].Name != "mistral:7b" {
		t.Fatalf("unexpected models: %+v", resp.Models)
	}
}

func TestModelsShow(t *testing.T) {
	out, err := run(t, t.TempDir(), "models", "show", "gemma3:4b")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var m types.ModelDef
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.GGUFFile != "gemma-3-4b-it-Q4_K_M.gguf" || m.Template != "gemma3" {
		t.Fatalf("unexpected model: %+v", m)
	}

	_, err = run(t, t.TempDir(), "models", "show", "nope")
	if !registry.IsModelNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestModelsPath(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "models", "path", "mistral:7b")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	want := filepath.Join(dir, "models", "summary", "Mistral-7B-Instruct-v0.3-Q4_K_M.gguf")
	if strings.TrimSpace(out) != want {
		t.Fatalf("path = %q, want %q", out, want)
	}
}

func TestModelsStatus(t *testing.T) {
	dir := t.TempDir()
	modelsDir := filepath.Join(dir, "models", "summary")
	if err := os.MkdirAll(modelsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(modelsDir, "gemma-3-1b-it-Q8_0.gguf"), []byte("gguf"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, dir, "models", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var gemma1, mistral string
	for _, l := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(l, "gemma3:1b"):
			gemma1 = l
		case strings.HasPrefix(l, "mistral:7b"):
			mistral = l
		}
	}
	if strings.Contains(gemma1, "missing") || gemma1 == "" {
		t.Fatalf("gemma3:1b should be on disk: %q", out)
	}
	if !strings.Contains(mistral, "missing") {
		t.Fatalf("mistral:7b should be missing: %q", out)
	}
}

func TestModelsRecommend(t *testing.T) {
	cases := map[string]string{
		"0":     "gemma3:1b",
		"4096":  "gemma3:4b",
		"16384": "mistral:7b",
	}
	for ram, want := range cases {
		out, err := run(t, t.TempDir(), "models", "recommend", "--ram-mb", ram)
		if err != nil {
			t.Fatalf("recommend %s: %v", ram, err)
		}
		if strings.TrimSpace(out) != want {
			t.Fatalf("recommend %s = %q, want %q", ram, out, want)
		}
	}
}

func TestTemplates(t *testing.T) {
	out, err := run(t, t.TempDir(), "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if out != "chatml\ngemma3\nllama3\nmistral\n" {
		t.Fatalf("templates = %q", out)
	}
}

func TestPrompt(t *testing.T) {
	out, err := run(t, t.TempDir(), "prompt", "--template", "mistral", "--system", "S", "--user", "U")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if out != "<s>[INST] S\n\nU [/INST]" {
		t.Fatalf("prompt = %q", out)
	}
	if _, err := run(t, t.TempDir(), "prompt", "--template", "alpaca"); err == nil {
		t.Fatalf("expected unknown template error")
	}
}

func TestSelectAndPlan(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "select")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if strings.TrimSpace(out) != "gemma3:1b (default)" {
		t.Fatalf("initial selection = %q", out)
	}
	if _, err := run(t, dir, "select", "nope"); !registry.IsModelNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
	if _, err := run(t, dir, "select", "gemma3:4b"); err != nil {
		t.Fatalf("select gemma3:4b: %v", err)
	}
	out, err = run(t, dir, "select")
	if err != nil || strings.TrimSpace(out) != "gemma3:4b" {
		t.Fatalf("persisted selection = %q, %v", out, err)
	}

	out, err = run(t, dir, "plan", "--system", "Summarise.", "--user", "text", "--max-tokens", "64")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var gr types.GenerationRequest
	if err := json.Unmarshal([]byte(out), &gr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gr.Model != "gemma3:4b" || gr.MaxTokens != 64 || gr.ContextSize != 32768 {
		t.Fatalf("unexpected plan: %+v", gr)
	}
	if !strings.HasSuffix(gr.ModelPath, "gemma-3-4b-it-Q4_K_M.gguf") {
		t.Fatalf("model path = %q", gr.ModelPath)
	}
}

func TestValidate(t *testing.T) {
	out, err := run(t, t.TempDir(), "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "ok: 3 models, 4 templates" {
		t.Fatalf("validate = %q", out)
	}
}

func TestConfigDBPathSurvivesAppDataDirFlag(t *testing.T) {
	d := t.TempDir()
	custom := filepath.Join(d, "custom", "sel.db")
	cfgPath := filepath.Join(d, "builtinai.yaml")
	if err := os.WriteFile(cfgPath, []byte("db_path: "+custom+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := filepath.Join(d, "app")
	if _, err := run(t, app, "--config", cfgPath, "select", "gemma3:4b"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("configured db not used: %v", err)
	}
	if _, err := os.Stat(filepath.Join(app, "builtinai.db")); !os.IsNotExist(err) {
		t.Fatalf("default db under app data dir was created: %v", err)
	}
	out, err := run(t, app, "--config", cfgPath, "models", "path", "gemma3:1b")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(app, "models", "summary", "gemma-3-1b-it-Q8_0.gguf") {
		t.Fatalf("models dir did not follow the flag: %q", out)
	}
}

func TestPlanCarriesIdleTimeout(t *testing.T) {
	t.Setenv("LLAMA_IDLE_TIMEOUT", "120")
	out, err := run(t, t.TempDir(), "plan", "--user", "text")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var gr types.GenerationRequest
	if err := json.Unmarshal([]byte(out), &gr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gr.IdleTimeoutSeconds != 120 || gr.TimeoutSeconds != 300 {
		t.Fatalf("unexpected timeouts: %+v", gr)
	}

	t.Setenv("LLAMA_IDLE_TIMEOUT", "soon")
	if _, err := run(t, t.TempDir(), "plan", "--user", "text"); err == nil {
		t.Fatalf("expected invalid LLAMA_IDLE_TIMEOUT to fail")
	}
}
