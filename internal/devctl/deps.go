package devctl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"asrd/internal/registry"
)

// CheckDeps verifies the external tools and the model the server needs.
// Every problem is reported before the aggregated error comes back, so a
// single run shows the full installation state.
func CheckDeps(ctx context.Context, modelsDir, model string) error {
	var missing []string

	for _, tool := range []struct {
		name     string
		override string
		version  bool
	}{
		{name: "ffmpeg", override: "ASRD_FFMPEG_BIN", version: true},
		{name: "ffprobe", version: true},
		{name: "whisper-cli", override: "ASRD_WHISPER_BIN"},
	} {
		path, err := resolveTool(tool.name, tool.override)
		if err != nil {
			warn("[deps] %s: not found", tool.name)
			missing = append(missing, tool.name)
			continue
		}
		if tool.version {
			if v, err := firstVersionLine(ctx, path); err == nil {
				info("[deps] %s: %s (%s)", tool.name, path, v)
				continue
			}
		}
		info("[deps] %s: %s", tool.name, path)
	}

	if model != "" {
		if p, err := registry.Resolve(modelsDir, model); err != nil {
			warn("[deps] model %q: %v", model, err)
			missing = append(missing, "model "+model)
		} else {
			info("[deps] model %q: %s", model, p)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing dependencies: %s", strings.Join(missing, ", "))
	}
	info("[deps] all dependencies present")
	return nil
}

// resolveTool honors the same env overrides the server uses before
// falling back to PATH lookup.
func resolveTool(name, override string) (string, error) {
	if override != "" {
		if v := os.Getenv(override); v != "" {
			if fi, err := os.Stat(v); err == nil && !fi.IsDir() {
				return v, nil
			}
			return "", fmt.Errorf("%s points to a missing file: %s", override, v)
		}
	}
	return exec.LookPath(name)
}

func firstVersionLine(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", err
	}
	line, _, _ := bytes.Cut(out, []byte("\n"))
	return string(bytes.TrimSpace(line)), nil
}
