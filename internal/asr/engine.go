package asr

import "context"

// Engine abstracts one loaded speech-recognition backend. Each pool instance
// owns exactly one Engine; the pool guarantees at most one Transcribe call is
// in flight per Engine at any time.
type Engine interface {
	// Transcribe decodes the WAV file at wavPath and returns the recognized
	// text. Implementations must return promptly when ctx is canceled.
	Transcribe(ctx context.Context, wavPath string, opts Options) (Result, error)
	// Close releases model memory and any subprocess resources.
	Close() error
}

// Options configures a single transcription call.
type Options struct {
	// Language hint for decoding, e.g. "zh", "en". Empty means auto-detect.
	Language string
	// Threads for the backend decoder; 0 lets the backend pick.
	Threads int
}

// Result is the outcome of one transcription call.
type Result struct {
	Text string
}

// Factory builds a fresh Engine bound to the given model file and device.
// The pool calls it once per instance during warm-up and again on recovery.
type Factory func(ctx context.Context, modelPath, device string) (Engine, error)

// dependencyUnavailableError signals a missing external backend (binary or
// build tag) so callers can distinguish environment problems from bad input.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed backend dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
