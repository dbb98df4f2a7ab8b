//go:build !whisper

package asr

// This file provides a no-CGO stub for the in-process whisper backend. It is
// compiled when the 'whisper' build tag is NOT set, keeping default builds and
// CI CGO-free. The real backend lives in engine_whisper.go (tagged 'whisper').

import "context"

var whisperBuilt = false

// NewWhisperEngine refuses to construct an Engine without the 'whisper' build
// tag. This avoids any mocked inference in binaries built without CGO support;
// such builds should use the exec backend instead.
func NewWhisperEngine(ctx context.Context, modelPath, device string) (Engine, error) {
	return nil, ErrDependencyUnavailable("whisper support not built (missing 'whisper' build tag)")
}
