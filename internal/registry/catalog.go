package registry

import "builtinai/pkg/types"

// builtinModels returns a fresh copy of the catalog. The first entry is the default.
// Add new models here; every consumer picks them up automatically.
func builtinModels() []types.ModelDef {
	return []types.ModelDef{
		{
			Name:        "gemma3:1b",
			DisplayName: "Gemma 3 1B (Fast)",
			GGUFFile:    "gemma-3-1b-it-Q8_0.gguf",
			Template:    "gemma3",
			DownloadURL: "https://huggingface.co/unsloth/gemma-3-1b-it-GGUF/resolve/main/gemma-3-1b-it-Q8_0.gguf",
			SizeMB:      806,
			MinRAMMB:    1024,
			ContextSize: 8192, // native window
			LayerCount:  26,
			Sampling: types.SamplingParams{
				Temperature: 1.0,
				TopK:        64,
				TopP:        0.95,
				StopTokens:  []string{"<end_of_turn>"},
			},
			Description: "Fastest model. Runs on any hardware with ~1GB RAM. Good for quick summaries.",
		},
		{
			Name:        "gemma3:4b",
			DisplayName: "Gemma 3 4B (Balanced)",
			GGUFFile:    "gemma-3-4b-it-Q4_K_M.gguf",
			Template:    "gemma3",
			DownloadURL: "https://huggingface.co/unsloth/gemma-3-4b-it-GGUF/resolve/main/gemma-3-4b-it-Q4_K_M.gguf",
			SizeMB:      2550,
			MinRAMMB:    3584,
			ContextSize: 32768, // supports 128k; 32k keeps local memory sane
			LayerCount:  35,
			Sampling: types.SamplingParams{
				Temperature: 1.0,
				TopK:        64,
				TopP:        0.95,
				StopTokens:  []string{"<end_of_turn>"},
			},
			Description: "Balanced model. Great quality/speed trade-off. Requires ~3.5GB RAM.",
		},
		{
			Name:        "mistral:7b",
			DisplayName: "Mistral 7B v0.3 (High-Quality)",
			GGUFFile:    "Mistral-7B-Instruct-v0.3-Q4_K_M.gguf",
			Template:    "mistral",
			DownloadURL: "https://huggingface.co/lmstudio-community/Mistral-7B-Instruct-v0.3-GGUF/resolve/main/Mistral-7B-Instruct-v0.3-Q4_K_M.gguf",
			SizeMB:      4368,
			MinRAMMB:    6144,
			ContextSize: 32768,
			LayerCount:  32,
			Sampling: types.SamplingParams{
				Temperature: 0.7,
				TopK:        40,
				TopP:        0.9,
				StopTokens:  []string{"</s>"},
			},
			Description: "High-quality model. Best results but requires ~6GB RAM. Ideal for detailed summaries.",
		},
	}
}
