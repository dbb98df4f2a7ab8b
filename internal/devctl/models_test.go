package devctl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchModelDownloads(t *testing.T) {
	payload := []byte("fake ggml weights")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ggml-small.bin" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer srv.Close()
	t.Setenv("ASRD_MODEL_BASE_URL", srv.URL)

	dir := t.TempDir()
	got, err := FetchModel(context.Background(), dir, "small")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := filepath.Join(dir, "ggml-small.bin")
	if got != want {
		t.Fatalf("path=%q want %q", got, want)
	}
	b, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != string(payload) {
		t.Fatalf("content=%q", b)
	}
	// no leftover partial files
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the model file, got %d entries", len(entries))
	}
}

func TestFetchModelSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "ggml-small.bin")
	if err := os.WriteFile(existing, []byte("already here"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Unreachable base URL proves we never hit the network.
	t.Setenv("ASRD_MODEL_BASE_URL", "http://127.0.0.1:0")

	got, err := FetchModel(context.Background(), dir, "small")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != existing {
		t.Fatalf("path=%q", got)
	}
	b, _ := os.ReadFile(existing)
	if string(b) != "already here" {
		t.Fatalf("file overwritten: %q", b)
	}
}

func TestFetchModelRejectsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	t.Setenv("ASRD_MODEL_BASE_URL", srv.URL)

	if _, err := FetchModel(context.Background(), t.TempDir(), "nonexistent"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetchModelKeepsFullFilenames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ggml-large-v3.bin" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("weights"))
	}))
	defer srv.Close()
	t.Setenv("ASRD_MODEL_BASE_URL", srv.URL)

	got, err := FetchModel(context.Background(), t.TempDir(), "ggml-large-v3.bin")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if filepath.Base(got) != "ggml-large-v3.bin" {
		t.Fatalf("path=%q", got)
	}
}

func TestListModels(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ggml-small.bin"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ListModels(dir); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := ListModels(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
