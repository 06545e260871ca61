package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"builtinai/internal/common/fsutil"
	"builtinai/pkg/types"
)

// ScanResult is the on-disk view of the models directory.
type ScanResult struct {
	Dir     string
	Models  []types.ModelStatus
	Unknown []string
}

// Scan reports, for every catalog model, where its file should be under modelsDir
// and whether it is there. GGUF files the catalog does not reference are listed in
// Unknown. A missing directory is not an error: nothing is downloaded yet.
func Scan(modelsDir string) (ScanResult, error) {
	base, err := fsutil.ExpandHome(modelsDir)
	if err != nil {
		return ScanResult{}, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return ScanResult{}, fmt.Errorf("abs path: %w", err)
	}
	res := ScanResult{Dir: abs}
	known := make(map[string]struct{})
	for _, m := range builtinModels() {
		p := filepath.Join(abs, m.GGUFFile)
		known[m.GGUFFile] = struct{}{}
		st := types.ModelStatus{Model: m, Path: p}
		st.SizeBytes, st.Downloaded = fsutil.RegularFileSize(p)
		res.Models = append(res.Models, st)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, nil
		}
		return res, fmt.Errorf("read dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		if _, ok := known[name]; ok {
			continue
		}
		res.Unknown = append(res.Unknown, name)
	}
	sort.Strings(res.Unknown)
	return res, nil
}
