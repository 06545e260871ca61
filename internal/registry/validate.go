package registry

import (
	"errors"
	"fmt"
	"strings"

	"builtinai/pkg/types"
)

// Validate checks catalog invariants: at least one model, unique names in
// family:variant form, a file name, and a template known to knownTemplate.
// A nil knownTemplate skips the template check.
func Validate(models []types.ModelDef, knownTemplate func(string) bool) error {
	if len(models) == 0 {
		return errors.New("catalog is empty")
	}
	var errs []error
	seen := make(map[string]struct{}, len(models))
	for i, m := range models {
		if _, dup := seen[m.Name]; dup {
			errs = append(errs, fmt.Errorf("model %d: duplicate name %q", i, m.Name))
		}
		seen[m.Name] = struct{}{}
		family, variant, ok := strings.Cut(m.Name, ":")
		if !ok || family == "" || variant == "" {
			errs = append(errs, fmt.Errorf("model %d: name %q is not family:variant", i, m.Name))
		}
		if m.GGUFFile == "" {
			errs = append(errs, fmt.Errorf("model %q: empty gguf file", m.Name))
		}
		if knownTemplate != nil && !knownTemplate(m.Template) {
			errs = append(errs, fmt.Errorf("model %q: unknown template %q", m.Name, m.Template))
		}
	}
	return errors.Join(errs...)
}

// ValidateBuiltin runs Validate over the built-in catalog.
func ValidateBuiltin(knownTemplate func(string) bool) error {
	return Validate(builtinModels(), knownTemplate)
}
