package registry

import "builtinai/pkg/types"

// Recommend picks the most capable model whose RAM guidance fits availableRAMMB.
// Unknown RAM (0) or nothing fitting yields the default model.
func Recommend(availableRAMMB uint64) types.ModelDef {
	return recommendFrom(builtinModels(), availableRAMMB)
}

func recommendFrom(models []types.ModelDef, availableRAMMB uint64) types.ModelDef {
	best := models[0]
	if availableRAMMB == 0 {
		return best
	}
	found := false
	for _, m := range models {
		if m.MinRAMMB > availableRAMMB {
			continue
		}
		if !found || m.MinRAMMB > best.MinRAMMB {
			best, found = m, true
		}
	}
	if !found {
		return models[0]
	}
	return best
}
