// Package prompt renders model-family chat templates. The framing tokens are
// structural delimiters for the inference engine and must stay byte-exact.
package prompt

import "sort"

// Placeholders substituted by FormatPrompt.
const (
	SystemPlaceholder = "{system_prompt}"
	UserPlaceholder   = "{user_prompt}"
)

// Gemma3Template is the Gemma 3 turn format.
const Gemma3Template = "<start_of_turn>user\n" +
	"{system_prompt}<end_of_turn>\n" +
	"<start_of_turn>user\n" +
	"{user_prompt}<end_of_turn>\n" +
	"<start_of_turn>model\n"

// ChatMLTemplate is used by Qwen, Phi and many others.
const ChatMLTemplate = "<|im_start|>system\n{system_prompt}<|im_end|>\n<|im_start|>user\n{user_prompt}<|im_end|>\n<|im_start|>assistant\n"

// Llama3Template is the Llama 3 header format.
const Llama3Template = "<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n{system_prompt}<|eot_id|><|start_header_id|>user<|end_header_id|>\n{user_prompt}<|eot_id|><|start_header_id|>assistant<|end_header_id|>\n"

// MistralTemplate is the Mistral v0.3 instruct format.
const MistralTemplate = "<s>[INST] {system_prompt}\n\n{user_prompt} [/INST]"

var templates = map[string]string{
	"gemma3":  Gemma3Template,
	"chatml":  ChatMLTemplate,
	"llama3":  Llama3Template,
	"mistral": MistralTemplate,
}

// Lookup returns the raw template text for name.
func Lookup(name string) (string, error) {
	t, ok := templates[name]
	if !ok {
		return "", ErrUnknownTemplate(name)
	}
	return t, nil
}

// Known reports whether name is a recognised template identifier.
func Known(name string) bool {
	_, ok := templates[name]
	return ok
}

// Names returns the template identifiers in sorted order.
func Names() []string {
	out := make([]string, 0, len(templates))
	for n := range templates {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
