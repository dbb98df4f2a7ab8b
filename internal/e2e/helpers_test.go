package e2e

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"asrd/internal/asr"
	"asrd/internal/httpapi"
	"asrd/internal/media"
	"asrd/internal/pool"
	"asrd/internal/registry"
)

// scriptedEngine delegates to a closure so each test controls inference
// outcomes.
type scriptedEngine struct {
	transcribe func(ctx context.Context, wavPath string, opts asr.Options) (asr.Result, error)
}

func (e *scriptedEngine) Transcribe(ctx context.Context, wavPath string, opts asr.Options) (asr.Result, error) {
	return e.transcribe(ctx, wavPath, opts)
}

func (e *scriptedEngine) Close() error { return nil }

func factoryOf(fn func(ctx context.Context, wavPath string, opts asr.Options) (asr.Result, error)) asr.Factory {
	return func(ctx context.Context, modelPath, device string) (asr.Engine, error) {
		return &scriptedEngine{transcribe: fn}, nil
	}
}

// createModelsDir writes a stub ggml model file so registry resolution
// has something real to find.
func createModelsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "ggml-small.bin")
	if err := os.WriteFile(p, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return dir
}

// fakeMedia writes shell-script stand-ins for ffmpeg and ffprobe. The
// ffmpeg stub succeeds silently, so no silence is ever detected; the
// ffprobe stub reports the given duration.
func fakeMedia(t *testing.T, probeSeconds string) *media.FFmpeg {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs need a POSIX shell")
	}
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "ffmpeg")
	ffprobe := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(ffmpeg, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	if err := os.WriteFile(ffprobe, []byte("#!/bin/sh\necho "+probeSeconds+"\n"), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	return media.NewWithPath(ffmpeg)
}

type serverConfig struct {
	instances     int
	queueCapacity int
	probe         string
	factory       asr.Factory
}

// newServer assembles the full in-process stack: model discovery, a
// warmed pool and the HTTP mux, served by httptest.
func newServer(t *testing.T, cfg serverConfig) (*httptest.Server, *pool.Pool) {
	t.Helper()
	modelPath, err := registry.Resolve(createModelsDir(t), "small")
	if err != nil {
		t.Fatalf("resolve model: %v", err)
	}
	logger := zerolog.Nop()
	p, err := pool.New(pool.Config{
		Instances:     cfg.instances,
		ModelPath:     modelPath,
		Factory:       cfg.factory,
		QueueCapacity: cfg.queueCapacity,
		LoadTimeout:   10 * time.Second,
		DrainTimeout:  2 * time.Second,
		Logger:        &logger,
	})
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start pool: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	mux := httpapi.NewMux(p, httpapi.Deps{
		Media:  fakeMedia(t, cfg.probe),
		TmpDir: t.TempDir(),
		Model:  "small",
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, p
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPost(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func postUpload(t *testing.T, url, lang string) (*http.Response, []byte) {
	t.Helper()
	status, body, err := doUpload(url, lang)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return &http.Response{StatusCode: status}, body
}

// doUpload is the non-fatal variant for use from spawned goroutines.
func doUpload(url, lang string) (int, []byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("lang", lang); err != nil {
		return 0, nil, err
	}
	fw, err := mw.CreateFormFile("file", "clip.mp3")
	if err != nil {
		return 0, nil, err
	}
	if _, err := fw.Write([]byte("not really audio")); err != nil {
		return 0, nil, err
	}
	if err := mw.Close(); err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode, body, nil
}
