package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr            string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir       string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	Model           string   `json:"model" yaml:"model" toml:"model"`
	Backend         string   `json:"backend" yaml:"backend" toml:"backend"`
	Instances       int      `json:"instances" yaml:"instances" toml:"instances"`
	Devices         []string `json:"devices" yaml:"devices" toml:"devices"`
	Threads         int      `json:"threads" yaml:"threads" toml:"threads"`
	QueueCapacity   int      `json:"queue_capacity" yaml:"queue_capacity" toml:"queue_capacity"`
	LoadTimeoutSec  int      `json:"load_timeout_sec" yaml:"load_timeout_sec" toml:"load_timeout_sec"`
	DrainTimeoutSec int      `json:"drain_timeout_sec" yaml:"drain_timeout_sec" toml:"drain_timeout_sec"`
	MaxUploadMB     int      `json:"max_upload_mb" yaml:"max_upload_mb" toml:"max_upload_mb"`
	ASRTimeoutSec   int      `json:"asr_timeout_sec" yaml:"asr_timeout_sec" toml:"asr_timeout_sec"`
	TmpDir          string   `json:"tmp_dir" yaml:"tmp_dir" toml:"tmp_dir"`
	MaxSegmentMs    int      `json:"max_segment_ms" yaml:"max_segment_ms" toml:"max_segment_ms"`
	MinSilenceMs    int      `json:"min_silence_ms" yaml:"min_silence_ms" toml:"min_silence_ms"`
	SilenceNoise    string   `json:"silence_noise" yaml:"silence_noise" toml:"silence_noise"`
	CORSEnabled     bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins     []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
