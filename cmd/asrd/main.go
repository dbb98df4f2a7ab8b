package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"asrd/internal/asr"
	"asrd/internal/config"
	"asrd/internal/httpapi"
	"asrd/internal/media"
	"asrd/internal/pool"
	"asrd/internal/registry"
	"asrd/internal/segment"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "asrd",
		Short:         "Multi-instance speech recognition service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newCheckCmd())
	return root
}

// serveOptions mirrors config.Config as flag values; flags the user set
// override config file values.
type serveOptions struct {
	configPath string

	addr            string
	modelsDir       string
	model           string
	backend         string
	instances       int
	devices         string
	threads         int
	queueCapacity   int
	loadTimeoutSec  int
	drainTimeoutSec int
	maxUploadMB     int
	asrTimeoutSec   int
	tmpDir          string
	maxSegmentMs    int
	minSilenceMs    int
	silenceNoise    string
	corsEnabled     bool
	corsOrigins     string
	logLevel        string
}

func newServeCmd() *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the model pool and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.buildConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	defaultAddr := ":8080"
	if v := os.Getenv("ASRD_ADDR"); v != "" {
		defaultAddr = v
	}
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "Optional config file (.yaml/.json/.toml)")
	f.StringVar(&o.addr, "addr", defaultAddr, "HTTP listen address, e.g. :8080")
	f.StringVar(&o.modelsDir, "models-dir", "~/models/whisper", "Directory to scan for *.bin model files")
	f.StringVar(&o.model, "model", "small", "Model id or file name to load")
	f.StringVar(&o.backend, "backend", "exec", "Inference backend: exec|whisper")
	f.IntVar(&o.instances, "instances", 5, "Number of recognizer instances")
	f.StringVar(&o.devices, "devices", "", "Comma-separated device tags cycled over instances, e.g. cuda:0,cuda:1")
	f.IntVar(&o.threads, "threads", 0, "Threads per inference call (0=engine default)")
	f.IntVar(&o.queueCapacity, "queue-capacity", 5000, "Admission queue capacity")
	f.IntVar(&o.loadTimeoutSec, "load-timeout-sec", 300, "Model warm-up timeout in seconds")
	f.IntVar(&o.drainTimeoutSec, "drain-timeout-sec", 30, "Shutdown drain timeout in seconds")
	f.IntVar(&o.maxUploadMB, "max-upload-mb", 100, "Maximum upload size in MiB")
	f.IntVar(&o.asrTimeoutSec, "asr-timeout-sec", 0, "Per-request transcription timeout in seconds (0=off)")
	f.StringVar(&o.tmpDir, "tmp-dir", "", "Scratch directory for uploads and segment files")
	f.IntVar(&o.maxSegmentMs, "max-segment-ms", 6000, "Maximum speech segment length in milliseconds")
	f.IntVar(&o.minSilenceMs, "min-silence-ms", 500, "Minimum silence gap to split on, milliseconds")
	f.StringVar(&o.silenceNoise, "silence-noise", "-35dB", "Noise floor passed to ffmpeg silencedetect")
	f.BoolVar(&o.corsEnabled, "cors", false, "Enable CORS")
	f.StringVar(&o.corsOrigins, "cors-origins", "*", "Comma-separated allowed CORS origins")
	f.StringVar(&o.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	return cmd
}

// buildConfig merges flag values over the optional config file. Flags the
// user set explicitly win; otherwise a non-zero file value replaces the
// flag default.
func (o *serveOptions) buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Config{
		Addr:            o.addr,
		ModelsDir:       o.modelsDir,
		Model:           o.model,
		Backend:         o.backend,
		Instances:       o.instances,
		Devices:         splitCSV(o.devices),
		Threads:         o.threads,
		QueueCapacity:   o.queueCapacity,
		LoadTimeoutSec:  o.loadTimeoutSec,
		DrainTimeoutSec: o.drainTimeoutSec,
		MaxUploadMB:     o.maxUploadMB,
		ASRTimeoutSec:   o.asrTimeoutSec,
		TmpDir:          o.tmpDir,
		MaxSegmentMs:    o.maxSegmentMs,
		MinSilenceMs:    o.minSilenceMs,
		SilenceNoise:    o.silenceNoise,
		CORSEnabled:     o.corsEnabled,
		CORSOrigins:     splitCSV(o.corsOrigins),
		LogLevel:        o.logLevel,
	}
	if o.configPath == "" {
		return cfg, nil
	}
	fc, err := config.Load(o.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	changed := cmd.Flags().Changed
	if !changed("addr") && fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if !changed("models-dir") && fc.ModelsDir != "" {
		cfg.ModelsDir = fc.ModelsDir
	}
	if !changed("model") && fc.Model != "" {
		cfg.Model = fc.Model
	}
	if !changed("backend") && fc.Backend != "" {
		cfg.Backend = fc.Backend
	}
	if !changed("instances") && fc.Instances > 0 {
		cfg.Instances = fc.Instances
	}
	if !changed("devices") && len(fc.Devices) > 0 {
		cfg.Devices = fc.Devices
	}
	if !changed("threads") && fc.Threads > 0 {
		cfg.Threads = fc.Threads
	}
	if !changed("queue-capacity") && fc.QueueCapacity > 0 {
		cfg.QueueCapacity = fc.QueueCapacity
	}
	if !changed("load-timeout-sec") && fc.LoadTimeoutSec > 0 {
		cfg.LoadTimeoutSec = fc.LoadTimeoutSec
	}
	if !changed("drain-timeout-sec") && fc.DrainTimeoutSec > 0 {
		cfg.DrainTimeoutSec = fc.DrainTimeoutSec
	}
	if !changed("max-upload-mb") && fc.MaxUploadMB > 0 {
		cfg.MaxUploadMB = fc.MaxUploadMB
	}
	if !changed("asr-timeout-sec") && fc.ASRTimeoutSec > 0 {
		cfg.ASRTimeoutSec = fc.ASRTimeoutSec
	}
	if !changed("tmp-dir") && fc.TmpDir != "" {
		cfg.TmpDir = fc.TmpDir
	}
	if !changed("max-segment-ms") && fc.MaxSegmentMs > 0 {
		cfg.MaxSegmentMs = fc.MaxSegmentMs
	}
	if !changed("min-silence-ms") && fc.MinSilenceMs > 0 {
		cfg.MinSilenceMs = fc.MinSilenceMs
	}
	if !changed("silence-noise") && fc.SilenceNoise != "" {
		cfg.SilenceNoise = fc.SilenceNoise
	}
	if !changed("cors") && fc.CORSEnabled {
		cfg.CORSEnabled = true
	}
	if !changed("cors-origins") && len(fc.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.CORSOrigins
	}
	if !changed("log-level") && fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return cfg, nil
}

func runServe(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)

	modelPath, err := registry.Resolve(cfg.ModelsDir, cfg.Model)
	if err != nil {
		return fmt.Errorf("resolve model: %w", err)
	}
	factory, err := asr.FactoryFor(cfg.Backend)
	if err != nil {
		return err
	}

	p, err := pool.New(pool.Config{
		Instances:     cfg.Instances,
		Devices:       cfg.Devices,
		ModelPath:     modelPath,
		Factory:       factory,
		Threads:       cfg.Threads,
		QueueCapacity: cfg.QueueCapacity,
		LoadTimeout:   time.Duration(cfg.LoadTimeoutSec) * time.Second,
		DrainTimeout:  time.Duration(cfg.DrainTimeoutSec) * time.Second,
		Logger:        &logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("start pool: %w", err)
	}
	defer p.Close()

	m := media.New()
	if err := m.CheckInstalled(); err != nil {
		logger.Warn().Err(err).Msg("ffmpeg unavailable, segmented transcription will fail")
	}

	httpapi.SetLogger(logger)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxUploadBytes(int64(cfg.MaxUploadMB) << 20)
	httpapi.SetASRTimeoutSeconds(int64(cfg.ASRTimeoutSec))
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins,
		[]string{"GET", "POST", "OPTIONS"}, []string{"Accept", "Content-Type", "X-Log-Level"})

	mux := httpapi.NewMux(p, httpapi.Deps{
		Media:        m,
		Planner:      segment.New(segment.Config{MaxSegment: time.Duration(cfg.MaxSegmentMs) * time.Millisecond}),
		TmpDir:       cfg.TmpDir,
		Model:        cfg.Model,
		SilenceNoise: cfg.SilenceNoise,
		MinSilence:   time.Duration(cfg.MinSilenceMs) * time.Millisecond,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("model", modelPath).Int("instances", p.Size()).Msg("asrd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return p.Close()
}

func newCheckCmd() *cobra.Command {
	var modelsDir, model string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify external dependencies and model files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := true

			m := media.New()
			if err := m.CheckInstalled(); err != nil {
				ok = false
				fmt.Printf("ffmpeg:  MISSING (%v)\n", err)
			} else {
				fmt.Printf("ffmpeg:  ok (%s)\n", m.Path())
			}

			if asr.BuiltWithWhisper() {
				fmt.Println("whisper: built in")
			} else {
				fmt.Println("whisper: not built in (exec backend only)")
			}

			if path, err := registry.Resolve(modelsDir, model); err != nil {
				ok = false
				fmt.Printf("model:   MISSING (%v)\n", err)
			} else {
				fmt.Printf("model:   ok (%s)\n", path)
			}

			if !ok {
				return fmt.Errorf("missing dependencies")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelsDir, "models-dir", "~/models/whisper", "Directory to scan for *.bin model files")
	cmd.Flags().StringVar(&model, "model", "small", "Model id or file name to check")
	return cmd
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
