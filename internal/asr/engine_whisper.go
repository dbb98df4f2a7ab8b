//go:build whisper

package asr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// whisperBuilt indicates this binary was compiled with real whisper support.
var whisperBuilt = true

// whisperEngine keeps one loaded ggml model and its decoding context resident.
type whisperEngine struct {
	mu    sync.Mutex
	model whisper.Model
	wctx  whisper.Context
}

// NewWhisperEngine loads the ggml model at modelPath in-process through the
// whisper.cpp bindings. The device tag is informational only: whisper.cpp
// decides GPU offload at library build time, not per call.
func NewWhisperEngine(ctx context.Context, modelPath, device string) (Engine, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, fmt.Errorf("model path is empty")
	}
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model: %w", err)
	}
	wctx, err := model.NewContext()
	if err != nil {
		model.Close()
		return nil, fmt.Errorf("new whisper context: %w", err)
	}
	return &whisperEngine{model: model, wctx: wctx}, nil
}

func (e *whisperEngine) Transcribe(ctx context.Context, wavPath string, opts Options) (Result, error) {
	samples, err := readWAVSamples(wavPath)
	if err != nil {
		return Result{}, err
	}
	// ggml contexts are not safe for concurrent Process calls.
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.model == nil {
		return Result{}, fmt.Errorf("whisper model closed")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	lang := strings.TrimSpace(opts.Language)
	if lang == "" {
		lang = "auto"
	}
	if err := e.wctx.SetLanguage(lang); err != nil {
		return Result{}, fmt.Errorf("set language %q: %w", lang, err)
	}
	e.wctx.SetTranslate(false)
	if opts.Threads > 0 {
		e.wctx.SetThreads(uint(opts.Threads))
	}
	var sb strings.Builder
	onSegment := func(seg whisper.Segment) {
		sb.WriteString(seg.Text)
	}
	if err := e.wctx.Process(samples, nil, onSegment, nil); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("whisper process: %w", err)
	}
	return Result{Text: strings.TrimSpace(sb.String())}, nil
}

func (e *whisperEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.model != nil {
		e.model.Close()
		e.model = nil
		e.wctx = nil
	}
	return nil
}
