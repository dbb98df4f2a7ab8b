package asr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// execEngine shells out to the whisper.cpp CLI for each transcription.
// It needs no CGO and is the default backend when the 'whisper' build tag
// is not set.
type execEngine struct {
	bin       string
	modelPath string
	device    string
}

// NewExecEngine resolves the whisper-cli binary and verifies the model file.
// No model memory is held between calls; the CLI loads the model per run,
// which is slower but keeps the daemon itself CGO-free.
func NewExecEngine(ctx context.Context, modelPath, device string) (Engine, error) {
	bin := discoverWhisperBin()
	if bin == "" {
		return nil, ErrDependencyUnavailable("whisper-cli not found: install whisper.cpp or build with -tags=whisper")
	}
	if fi, err := os.Stat(bin); err != nil || fi.IsDir() {
		return nil, ErrDependencyUnavailable(fmt.Sprintf("whisper-cli not found or not a file: %s", bin))
	}
	if strings.TrimSpace(modelPath) == "" {
		return nil, fmt.Errorf("model path is empty")
	}
	if fi, err := os.Stat(modelPath); err != nil || fi.IsDir() {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}
	return &execEngine{bin: bin, modelPath: modelPath, device: device}, nil
}

func (e *execEngine) Transcribe(ctx context.Context, wavPath string, opts Options) (Result, error) {
	args := []string{
		"-m", e.modelPath,
		"-f", wavPath,
		"--no-timestamps",
		"--no-prints",
	}
	if lang := strings.TrimSpace(opts.Language); lang != "" {
		args = append(args, "-l", lang)
	}
	if opts.Threads > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", opts.Threads))
	}
	cmd := exec.CommandContext(ctx, e.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Result{}, fmt.Errorf("whisper-cli: %s", msg)
	}
	return Result{Text: strings.TrimSpace(stdout.String())}, nil
}

func (e *execEngine) Close() error {
	// Nothing held between runs.
	return nil
}

// discoverWhisperBin attempts to locate a whisper.cpp CLI binary in common
// install locations before falling back to PATH lookup. ASRD_WHISPER_BIN
// overrides discovery. The older name "main" is deliberately not probed
// because it collides with too many binaries.
func discoverWhisperBin() string {
	if v := os.Getenv("ASRD_WHISPER_BIN"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, "apps", "whisper.cpp", "build", "bin", "whisper-cli"),
		"/usr/local/bin/whisper-cli",
		"/opt/homebrew/bin/whisper-cli",
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	if lp, err := exec.LookPath("whisper-cli"); err == nil {
		return lp
	}
	return ""
}
