package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml",
		"addr: :9999\nmodels_dir: /models\nmodel: small\nbackend: exec\ninstances: 3\ndevices:\n  - cpu\n  - cuda:0\nthreads: 4\nqueue_capacity: 100\nmax_upload_mb: 64\nasr_timeout_sec: 120\ncors_enabled: true\ncors_origins:\n  - http://localhost:5173\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelsDir != "/models" || cfg.Model != "small" || cfg.Backend != "exec" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Instances != 3 || cfg.Threads != 4 || cfg.QueueCapacity != 100 || cfg.MaxUploadMB != 64 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Devices) != 2 || cfg.Devices[0] != "cpu" || cfg.Devices[1] != "cuda:0" {
		t.Fatalf("unexpected devices: %+v", cfg.Devices)
	}
	if cfg.ASRTimeoutSec != 120 || !cfg.CORSEnabled || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json",
		`{"addr":":7070","models_dir":"/m","model":"base","instances":2,"load_timeout_sec":60,"drain_timeout_sec":10,"tmp_dir":"/tmp/asr"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelsDir != "/m" || cfg.Model != "base" || cfg.Instances != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.LoadTimeoutSec != 60 || cfg.DrainTimeoutSec != 10 || cfg.TmpDir != "/tmp/asr" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml",
		"addr=\":8081\"\nmodel=\"small\"\ninstances=5\nmax_segment_ms=6000\nmin_silence_ms=500\nsilence_noise=\"-35dB\"\nlog_level=\"debug\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.Model != "small" || cfg.Instances != 5 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.MaxSegmentMs != 6000 || cfg.MinSilenceMs != 500 || cfg.SilenceNoise != "-35dB" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: \"unterminated\nmodel: small\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "addr": ":8080", "models_dir": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nmodels_dir\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}
