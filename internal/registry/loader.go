package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asrd/internal/common/fsutil"
	"asrd/pkg/types"
)

// ModelScanner discovers whisper model files in a directory.
type ModelScanner struct {
	ext string
}

// NewModelScanner scans for the ggml *.bin files whisper.cpp ships.
func NewModelScanner() *ModelScanner {
	return &ModelScanner{ext: ".bin"}
}

// Scan lists model files under dir. ID is the full filename (including
// extension); Path is the absolute file path.
func (s *ModelScanner) Scan(dir string) ([]types.ModelEntry, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.ModelEntry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), s.ext) {
			continue
		}
		entry := types.ModelEntry{ID: name, Path: filepath.Join(abs, name)}
		if info, err := e.Info(); err == nil {
			entry.SizeBytes = info.Size()
		}
		models = append(models, entry)
	}
	return models, nil
}

// LoadDir scans a directory for whisper model files using the default
// scanner.
func LoadDir(dir string) ([]types.ModelEntry, error) {
	return NewModelScanner().Scan(dir)
}

// Resolve maps a model name or path to a model file. An existing file
// path wins; otherwise the name is looked up in dir, trying the
// whisper.cpp "ggml-<name>.bin" convention before the bare filename.
func Resolve(dir, model string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("empty model name")
	}
	if p, err := fsutil.ExpandHome(model); err == nil {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	if dir == "" {
		return "", fmt.Errorf("model %q is not a file and no models dir is set", model)
	}
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	candidates := []string{
		filepath.Join(base, "ggml-"+model+".bin"),
		filepath.Join(base, model+".bin"),
		filepath.Join(base, model),
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("model %q not found under %s", model, base)
}
