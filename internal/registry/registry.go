// Package registry holds the built-in summary model catalog and resolves model
// names to metadata and on-disk locations. Everything here except Scan is pure and
// safe for concurrent use without locking.
package registry

import (
	"path/filepath"

	"builtinai/pkg/types"
)

// ListModels returns all built-in models in catalog order. Never empty.
func ListModels() []types.ModelDef {
	return builtinModels()
}

// GetModel returns the model whose name matches exactly (case-sensitive).
func GetModel(name string) (types.ModelDef, error) {
	return find(builtinModels(), name)
}

func find(models []types.ModelDef, name string) (types.ModelDef, error) {
	for _, m := range models {
		if m.Name == name {
			return m, nil
		}
	}
	return types.ModelDef{}, ErrModelNotFound(name)
}

// DefaultModel returns the first catalog entry.
func DefaultModel() types.ModelDef {
	models := builtinModels()
	if len(models) == 0 {
		panic("registry: at least one model must be defined")
	}
	return models[0]
}

// ResolveModelPath returns modelsRoot/<gguf file> for the named model.
// It does not touch the filesystem.
func ResolveModelPath(modelsRoot, name string) (string, error) {
	m, err := GetModel(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(modelsRoot, m.GGUFFile), nil
}

// ModelsDirectory returns the directory built-in model files live in.
func ModelsDirectory(appDataRoot string) string {
	return filepath.Join(appDataRoot, "models", "summary")
}
