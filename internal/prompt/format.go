package prompt

import "strings"

// FormatPrompt fills the named template with systemPrompt and userPrompt.
//
// Every placeholder occurrence is replaced in one pass over the template. The
// inserted text is never rescanned, so a placeholder token inside either argument
// is emitted literally. Inputs are not escaped or trimmed.
func FormatPrompt(templateName, systemPrompt, userPrompt string) (string, error) {
	tmpl, err := Lookup(templateName)
	if err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		SystemPlaceholder, systemPrompt,
		UserPlaceholder, userPrompt,
	)
	return r.Replace(tmpl), nil
}
