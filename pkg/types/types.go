package types

// GenerationRequest is everything the inference sidecar needs to produce a summary.
// It is built by the planner and never executed inside this module.
type GenerationRequest struct {
	// Catalog model name.
	// example: gemma3:1b
	Model string `json:"model" example:"gemma3:1b"`
	// Absolute path of the GGUF file to load.
	ModelPath string `json:"model_path"`
	// Fully formatted prompt including template framing tokens.
	Prompt string `json:"prompt"`
	// Maximum number of new tokens to generate.
	// example: 2048
	MaxTokens int `json:"max_tokens" example:"2048"`
	// Context window to allocate.
	// example: 8192
	ContextSize uint32 `json:"context_size" example:"8192"`
	// Layer count used for GPU offload sizing.
	// example: 26
	LayerCount uint32 `json:"layer_count" example:"26"`
	// Sampling temperature.
	// example: 1.0
	Temperature float32 `json:"temperature" example:"1.0"`
	// Top-K sampling.
	// example: 64
	TopK int32 `json:"top_k" example:"64"`
	// Nucleus sampling probability.
	// example: 0.95
	TopP float32 `json:"top_p" example:"0.95"`
	// Stop sequences.
	// example: ["<end_of_turn>"]
	Stop []string `json:"stop" example:"[\"<end_of_turn>\"]"`
	// How long the caller should wait for a response, in seconds.
	// example: 300
	TimeoutSeconds int64 `json:"timeout_seconds" example:"300"`
	// How long the sidecar may keep the model loaded without work, in seconds.
	// example: 300
	IdleTimeoutSeconds int64 `json:"idle_timeout_seconds" example:"300"`
}
