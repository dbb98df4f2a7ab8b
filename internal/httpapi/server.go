package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"asrd/internal/asr"
	"asrd/internal/media"
	"asrd/internal/pool"
	"asrd/internal/segment"
	"asrd/internal/subtitle"
	"asrd/internal/text"
	"asrd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Transcribe(ctx context.Context, wavPath string, opts asr.Options) (string, error)
	Stats() types.PoolStats
	PoolStatus() types.PoolStatus
	QueueStatus() types.QueueStatus
	Health() types.HealthResponse
	Recover(ctx context.Context, id int) error
	Ready() bool
}

// Deps carries the collaborators the transcription endpoints use.
// Zero-value fields fall back to package defaults.
type Deps struct {
	Media   *media.FFmpeg
	Planner *segment.Planner
	TmpDir  string
	// Model is the model identifier reported by the root endpoint.
	Model string
	// Silence detection tuning passed through to ffmpeg.
	SilenceNoise string
	MinSilence   time.Duration
}

type api struct {
	svc        Service
	media      *media.FFmpeg
	planner    *segment.Planner
	tmpDir     string
	model      string
	noise      string
	minSilence time.Duration
}

func NewMux(svc Service, deps Deps) http.Handler {
	a := &api{
		svc:        svc,
		media:      deps.Media,
		planner:    deps.Planner,
		tmpDir:     deps.TmpDir,
		model:      deps.Model,
		noise:      deps.SilenceNoise,
		minSilence: deps.MinSilence,
	}
	if a.media == nil {
		a.media = media.New()
	}
	if a.planner == nil {
		a.planner = segment.New(segment.Config{})
	}
	if a.tmpDir == "" {
		a.tmpDir = os.TempDir()
	}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/", a.handleRoot)
	r.Get("/health", a.handleHealth)
	r.Get("/stats", a.handleStats)
	r.Post("/asr", a.handleASR)
	r.Post("/asr_simple", a.handleASRSimple)
	r.Post("/instances/{id}/recover", a.handleRecover)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleRoot godoc
// @Summary Service description
// @Produce json
// @Success 200 {object} types.RootResponse
// @Router / [get]
func (a *api) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.RootResponse{
		Service:   "asrd",
		Model:     a.model,
		Languages: text.SupportedLanguages(),
		Endpoints: []string{
			"POST /asr", "POST /asr_simple", "GET /health", "GET /stats",
			"POST /instances/{id}/recover", "GET /healthz", "GET /readyz", "GET /metrics",
		},
	})
}

// handleHealth godoc
// @Summary Pool health with per-instance detail
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Failure 503 {object} types.HealthResponse
// @Router /health [get]
func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := a.svc.Health()
	status := http.StatusOK
	// Degraded still serves traffic; only unhealthy flips the status code.
	if h.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, h)
}

// handleStats godoc
// @Summary Pool, queue and per-instance statistics
// @Produce json
// @Success 200 {object} types.StatsResponse
// @Router /stats [get]
func (a *api) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.StatsResponse{
		ModelPoolStats: a.svc.Stats(),
		PoolStatus:     a.svc.PoolStatus(),
		QueueStatus:    a.svc.QueueStatus(),
		Timestamp:      time.Now().Unix(),
	})
}

// handleRecover godoc
// @Summary Reload a failed instance
// @Produce json
// @Param id path int true "instance id"
// @Success 200 {object} types.RecoverResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /instances/{id}/recover [post]
func (a *api) handleRecover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "instance id must be an integer")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := a.svc.Recover(ctx, id); err != nil {
		switch {
		case pool.IsInstanceNotFound(err):
			writeJSONError(w, http.StatusNotFound, err.Error())
		case pool.IsNotFailed(err):
			writeJSONError(w, http.StatusConflict, err.Error())
		case pool.IsShutdown(err):
			writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, types.RecoverResponse{InstanceID: id, Status: "idle"})
}

// handleASR godoc
// @Summary Transcribe an upload into SRT
// @Description Splits the upload on detected silence and transcribes the
// @Description segments on the instance pool. Returns SRT plus per-segment stats.
// @Accept mpfd
// @Produce json
// @Param file formData file true "media file"
// @Param lang formData string true "language code (zh, ja, en, ko, yue)"
// @Success 200 {object} types.TranscribeResponse
// @Failure 400 {object} types.TranscribeResponse
// @Failure 500 {object} types.TranscribeResponse
// @Router /asr [post]
func (a *api) handleASR(w http.ResponseWriter, r *http.Request) {
	lvl := requestLogLevel(r)
	start := time.Now()

	lang, uploadPath, ok := a.acceptUpload(w, r)
	if !ok {
		return
	}
	defer os.Remove(uploadPath)

	ctx, cancel := requestContext(r)
	defer cancel()

	if lvl >= LevelInfo {
		z := zlog.Info().Str("path", r.URL.Path).Str("lang", lang)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("asr start")
	}

	wavPath, err := a.prepareWAV(ctx, uploadPath)
	if err != nil {
		a.processingError(w, r, lvl, start, err)
		return
	}
	defer os.Remove(wavPath)

	total, err := a.media.Duration(ctx, wavPath)
	if err != nil {
		a.processingError(w, r, lvl, start, err)
		return
	}
	silences, err := a.media.DetectSilence(ctx, wavPath, a.noise, a.minSilence)
	if err != nil {
		a.processingError(w, r, lvl, start, err)
		return
	}
	spans := a.planner.Plan(total, silences)
	if len(spans) == 0 {
		writeJSON(w, http.StatusOK, types.TranscribeResponse{
			Code: 0, Msg: "ok", Stats: &types.SegmentStats{},
		})
		logASREnd(r, lvl, http.StatusOK, start, nil)
		return
	}

	results := a.transcribeSpans(ctx, wavPath, lang, spans)
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return
	}

	var cues []subtitle.Cue
	succeeded := 0
	for i, res := range results {
		if res.err != nil {
			if lvl >= LevelError {
				zlog.Error().Err(res.err).Int("segment", i).Msg("segment failed")
			}
			continue
		}
		succeeded++
		if res.text == "" {
			continue
		}
		cues = append(cues, subtitle.Cue{
			Index: len(cues) + 1,
			Start: res.span.Start,
			End:   res.span.End,
			Text:  res.text,
		})
	}

	stats := types.SegmentStats{
		TotalSegments:      len(results),
		SuccessfulSegments: succeeded,
		FailedSegments:     len(results) - succeeded,
		SuccessRate:        float64(succeeded) / float64(len(results)),
	}
	writeJSON(w, http.StatusOK, types.TranscribeResponse{
		Code: 0, Msg: "ok", Data: subtitle.Format(cues), Stats: &stats,
	})
	logASREnd(r, lvl, http.StatusOK, start, nil)
}

// handleASRSimple godoc
// @Summary Transcribe an upload as one piece
// @Accept mpfd
// @Produce json
// @Param file formData file true "media file"
// @Param lang formData string true "language code (zh, ja, en, ko, yue)"
// @Success 200 {object} types.TranscribeResponse
// @Failure 400 {object} types.TranscribeResponse
// @Failure 429 {object} types.TranscribeResponse
// @Failure 503 {object} types.TranscribeResponse
// @Router /asr_simple [post]
func (a *api) handleASRSimple(w http.ResponseWriter, r *http.Request) {
	lvl := requestLogLevel(r)
	start := time.Now()

	lang, uploadPath, ok := a.acceptUpload(w, r)
	if !ok {
		return
	}
	defer os.Remove(uploadPath)

	ctx, cancel := requestContext(r)
	defer cancel()

	wavPath, err := a.prepareWAV(ctx, uploadPath)
	if err != nil {
		a.processingError(w, r, lvl, start, err)
		return
	}
	defer os.Remove(wavPath)

	out, err := a.svc.Transcribe(ctx, wavPath, asr.Options{Language: lang})
	if err != nil {
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := http.StatusInternalServerError
		switch {
		case pool.IsQueueFull(err):
			status = http.StatusTooManyRequests
			IncrementBackpressure("queue_full")
		case pool.IsShutdown(err):
			status = http.StatusServiceUnavailable
		case asr.IsDependencyUnavailable(err):
			status = http.StatusServiceUnavailable
		default:
			if he, ok := err.(HTTPError); ok {
				status = he.StatusCode()
			}
		}
		writeJSON(w, status, types.TranscribeResponse{
			Code: 500, Msg: fmt.Sprintf("transcription failed: %v", err),
		})
		logASREnd(r, lvl, status, start, err)
		return
	}

	writeJSON(w, http.StatusOK, types.TranscribeResponse{
		Code: 0, Msg: "ok", Data: strings.TrimSpace(text.Clean(out)),
	})
	logASREnd(r, lvl, http.StatusOK, start, nil)
}

// acceptUpload validates the multipart request and spools the upload to
// the temp dir. On failure it writes the error response and returns
// ok=false; the caller owns removing the returned path otherwise.
func (a *api) acceptUpload(w http.ResponseWriter, r *http.Request) (lang, path string, ok bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "multipart/form-data") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be multipart/form-data")
		return "", "", false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", maxErr.Limit))
			return "", "", false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form")
		return "", "", false
	}

	lang = r.FormValue("lang")
	if !text.IsSupportedLanguage(lang) {
		writeJSON(w, http.StatusBadRequest, types.TranscribeResponse{
			Code: 1, Msg: fmt.Sprintf("unsupported language code: %s", lang),
		})
		return "", "", false
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "file is required")
		return "", "", false
	}
	defer file.Close()

	path, err = a.saveUpload(file, hdr.Filename)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return "", "", false
	}
	return lang, path, true
}

// saveUpload spools the multipart file to the temp dir, keeping the
// original extension when it looks sane.
func (a *api) saveUpload(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filepath.Base(filename))
	if len(ext) > 8 {
		ext = ""
	}
	tmp, err := os.CreateTemp(a.tmpDir, "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// prepareWAV converts the upload into the 16 kHz mono PCM file the
// recognizer consumes.
func (a *api) prepareWAV(ctx context.Context, uploadPath string) (string, error) {
	tmp, err := os.CreateTemp(a.tmpDir, "audio-*.wav")
	if err != nil {
		return "", err
	}
	wavPath := tmp.Name()
	tmp.Close()
	if err := a.media.ToWAV(ctx, uploadPath, wavPath); err != nil {
		os.Remove(wavPath)
		return "", err
	}
	return wavPath, nil
}

type spanResult struct {
	span segment.Span
	text string
	err  error
}

// transcribeSpans cuts each span into its own file and fans the
// transcriptions out to the pool. Results come back indexed by span so
// playback order survives the concurrency.
func (a *api) transcribeSpans(ctx context.Context, wavPath, lang string, spans []segment.Span) []spanResult {
	results := make([]spanResult, len(spans))
	var wg sync.WaitGroup
	for i, sp := range spans {
		wg.Add(1)
		go func(i int, sp segment.Span) {
			defer wg.Done()
			results[i] = a.transcribeSpan(ctx, wavPath, lang, i, sp)
		}(i, sp)
	}
	wg.Wait()
	return results
}

func (a *api) transcribeSpan(ctx context.Context, wavPath, lang string, i int, sp segment.Span) spanResult {
	res := spanResult{span: sp}
	f, err := os.CreateTemp(a.tmpDir, fmt.Sprintf("segment-%d-*.wav", i))
	if err != nil {
		res.err = err
		return res
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := a.media.Slice(ctx, wavPath, path, sp.Start, sp.End); err != nil {
		res.err = err
		return res
	}
	out, err := a.svc.Transcribe(ctx, path, asr.Options{Language: lang})
	if err != nil {
		res.err = err
		return res
	}
	res.text = strings.TrimSpace(text.Clean(out))
	return res
}

// processingError reports a failure preparing or splitting the audio.
func (a *api) processingError(w http.ResponseWriter, r *http.Request, lvl LogLevel, start time.Time, err error) {
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return
	}
	writeJSON(w, http.StatusInternalServerError, types.TranscribeResponse{
		Code: 500, Msg: fmt.Sprintf("processing error: %v", err),
	})
	logASREnd(r, lvl, http.StatusInternalServerError, start, err)
}

func logASREnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	if lvl < LevelInfo {
		return
	}
	z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg("asr end")
}
