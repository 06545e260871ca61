package types

// SamplingParams are the per-model generation defaults handed to the inference runtime.
type SamplingParams struct {
	// Sampling temperature (0 = deterministic).
	// example: 1.0
	Temperature float32 `json:"temperature" example:"1.0"`
	// Top-K sampling (0 = disabled).
	// example: 64
	TopK int32 `json:"top_k" example:"64"`
	// Nucleus sampling threshold (1.0 = disabled).
	// example: 0.95
	TopP float32 `json:"top_p" example:"0.95"`
	// Generation stops when any of these appear in the output.
	// example: ["<end_of_turn>"]
	StopTokens []string `json:"stop_tokens" example:"[\"<end_of_turn>\"]"`
}

// ModelDef describes one built-in summary model.
type ModelDef struct {
	// Unique identifier in family:variant form. Persisted by callers.
	// example: gemma3:1b
	Name string `json:"name" example:"gemma3:1b"`
	// Human-friendly name.
	// example: Gemma 3 1B (Fast)
	DisplayName string `json:"display_name" example:"Gemma 3 1B (Fast)"`
	// Short description for UIs.
	Description string `json:"description"`
	// Model file name inside the models directory.
	// example: gemma-3-1b-it-Q8_0.gguf
	GGUFFile string `json:"gguf_file" example:"gemma-3-1b-it-Q8_0.gguf"`
	// Prompt template identifier (gemma3, chatml, llama3, mistral).
	// example: gemma3
	Template string `json:"template" example:"gemma3"`
	// Where the downloader fetches the file from.
	DownloadURL string `json:"download_url"`
	// File size in MB.
	// example: 806
	SizeMB uint64 `json:"size_mb" example:"806"`
	// Approximate RAM needed to run the model, in MB.
	// example: 1024
	MinRAMMB uint64 `json:"min_ram_mb" example:"1024"`
	// Context window in tokens.
	// example: 8192
	ContextSize uint32 `json:"context_size" example:"8192"`
	// Transformer layer count, used for GPU offload sizing.
	// example: 26
	LayerCount uint32 `json:"layer_count" example:"26"`
	Sampling   SamplingParams `json:"sampling"`
}

// ModelStatus reports where a catalog model lives on disk and whether it is present.
type ModelStatus struct {
	Model ModelDef `json:"model"`
	// Absolute path the model file is expected at.
	// example: /home/user/.local/share/builtinai/models/summary/gemma-3-1b-it-Q8_0.gguf
	Path       string `json:"path"`
	Downloaded bool   `json:"downloaded"`
	// Size of the file on disk in bytes (0 when missing).
	SizeBytes int64 `json:"size_bytes"`
}
