package asr

import "fmt"

// Backend names accepted in configuration.
const (
	BackendExec    = "exec"
	BackendWhisper = "whisper"
)

// FactoryFor maps a configured backend name to its Engine factory.
// The empty string selects the exec backend.
func FactoryFor(backend string) (Factory, error) {
	switch backend {
	case "", BackendExec:
		return NewExecEngine, nil
	case BackendWhisper:
		return NewWhisperEngine, nil
	default:
		return nil, fmt.Errorf("unknown asr backend %q (want %q or %q)", backend, BackendExec, BackendWhisper)
	}
}

// BuiltWithWhisper reports whether this binary carries the in-process
// whisper backend.
func BuiltWithWhisper() bool { return whisperBuilt }
