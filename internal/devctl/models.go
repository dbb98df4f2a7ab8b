package devctl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"asrd/internal/common/fsutil"
	"asrd/internal/registry"
)

// defaultModelBaseURL is where whisper.cpp publishes its converted ggml
// models. ASRD_MODEL_BASE_URL overrides it.
const defaultModelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// ListModels prints every model file found in dir.
func ListModels(dir string) error {
	entries, err := registry.LoadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		info("[models] no model files in %s", dir)
		return nil
	}
	for _, e := range entries {
		info("[models] %s  %d MB  %s", e.ID, e.SizeBytes>>20, e.Path)
	}
	return nil
}

// FetchModel downloads the named ggml model into dir and returns the
// final path. An already present file is kept as is.
func FetchModel(ctx context.Context, dir, name string) (string, error) {
	file := name
	if !strings.HasSuffix(file, ".bin") {
		file = "ggml-" + name + ".bin"
	}
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(base, file)
	if fsutil.PathExists(dst) {
		info("[models] %s already present, skipping download", dst)
		return dst, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}

	url := envStr("ASRD_MODEL_BASE_URL", defaultModelBaseURL) + "/" + file
	info("[models] downloading %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	// Download into a temp name so a partial file never looks like a model.
	tmp, err := os.CreateTemp(base, file+".part-*")
	if err != nil {
		return "", err
	}
	n, err := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	info("[models] saved %s (%d MB)", dst, n>>20)
	return dst, nil
}
