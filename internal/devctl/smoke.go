package devctl

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// SmokeConfig selects the smoke target. An empty Addr spawns a fresh
// server from the working tree; otherwise the running server at Addr is
// probed as is.
type SmokeConfig struct {
	Addr      string
	ModelsDir string
	Model     string
}

// Smoke probes the basic read endpoints of a server and fails on the
// first one that does not answer 200.
func Smoke(ctx context.Context, cfg SmokeConfig) error {
	base := strings.TrimRight(cfg.Addr, "/")
	if base == "" {
		spawned, stop, err := spawnServer(ctx, cfg)
		if err != nil {
			return err
		}
		defer stop()
		base = spawned
	}

	if err := waitHTTP(base+"/healthz", http.StatusOK, 30*time.Second); err != nil {
		return err
	}
	for _, p := range []string{"/", "/readyz", "/health", "/stats", "/metrics"} {
		status, err := getStatus(ctx, base+p)
		if err != nil {
			return fmt.Errorf("GET %s: %w", p, err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("GET %s: status %d", p, status)
		}
		info("[smoke] %s ok", p)
	}
	info("[smoke] server at %s looks good", base)
	return nil
}

// spawnServer builds the server from the working tree and starts it on a
// free port. The returned stop func kills the process and removes the
// temporary binary.
func spawnServer(ctx context.Context, cfg SmokeConfig) (string, func(), error) {
	port, err := chooseFreePort()
	if err != nil {
		return "", nil, err
	}
	bin := filepath.Join(os.TempDir(), fmt.Sprintf("asrd-smoke-%d", port))
	info("[smoke] building server binary")
	if err := RunCmd(ctx, Cmd{Path: "go", Args: []string{"build", "-o", bin, "./cmd/asrd"}}); err != nil {
		return "", nil, fmt.Errorf("build server: %w", err)
	}

	args := []string{"serve", "--addr", fmt.Sprintf(":%d", port), "--instances", "1", "--log-level", "error"}
	if cfg.ModelsDir != "" {
		args = append(args, "--models-dir", cfg.ModelsDir)
	}
	if cfg.Model != "" {
		args = append(args, "--model", cfg.Model)
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		_ = os.Remove(bin)
		return "", nil, fmt.Errorf("start server: %w", err)
	}
	pm := NewProcManager()
	pm.Add(cmd)
	stop := func() {
		pm.KillAll()
		_ = os.Remove(bin)
	}
	info("[smoke] server starting on :%d", port)
	return fmt.Sprintf("http://127.0.0.1:%d", port), stop, nil
}

func getStatus(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}
