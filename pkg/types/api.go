package types

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// Built-in models, default first.
	Models []ModelDef `json:"models"`
}

// ModelStatusResponse wraps GET /models/status.
type ModelStatusResponse struct {
	// Directory that was inspected.
	ModelsDir string        `json:"models_dir"`
	Models    []ModelStatus `json:"models"`
	// GGUF files present in the directory that the catalog does not know about.
	Unknown []string `json:"unknown,omitempty"`
}

// ModelPathResponse is returned by GET /models/{name}/path.
type ModelPathResponse struct {
	// example: gemma3:1b
	Name string `json:"name" example:"gemma3:1b"`
	// Absolute path the file is expected at. The file may not exist yet.
	Path string `json:"path"`
}

// TemplatesResponse lists the known prompt template identifiers.
type TemplatesResponse struct {
	// example: ["chatml","gemma3","llama3","mistral"]
	Templates []string `json:"templates"`
}

// PromptRequest asks for a template to be filled in.
type PromptRequest struct {
	// Template identifier.
	// example: gemma3
	Template string `json:"template" example:"gemma3"`
	// Instructions for the model.
	// example: You are a meeting summarizer.
	SystemPrompt string `json:"system_prompt" example:"You are a meeting summarizer."`
	// The task text.
	// example: Summarize this transcript.
	UserPrompt string `json:"user_prompt" example:"Summarize this transcript."`
}

// PromptResponse carries a formatted prompt.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// PlanRequest asks for a GenerationRequest to be assembled.
type PlanRequest struct {
	// Optional model name. If empty, the stored selection or the default is used.
	// example: gemma3:4b
	Model        string `json:"model,omitempty" example:"gemma3:4b"`
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
	// Overrides the configured max tokens when > 0.
	// example: 1024
	MaxTokens int `json:"max_tokens,omitempty" example:"1024"`
}

// SelectionRequest is the body of PUT /selection.
type SelectionRequest struct {
	// example: gemma3:4b
	Model string `json:"model" example:"gemma3:4b"`
}

// SelectionResponse is returned by GET/PUT /selection.
type SelectionResponse struct {
	Model ModelDef `json:"model"`
	// True when no usable selection was stored and the default model was returned.
	Fallback bool `json:"fallback"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model not found: nonexistent:1b
	Error string `json:"error" example:"model not found: nonexistent:1b"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
