//go:build whisper

package asr

// cgo link directives for the in-process whisper backend.
// - We set an rpath of $ORIGIN so the runtime loader finds libwhisper.so and
//   libggml*.so in the same directory as the built Go binary (./bin).
// - We add -L${SRCDIR}/../../bin so the linker finds libwhisper.so at link
//   time when building the 'whisper' variant.
// - No environment variables are required.
/*
#cgo LDFLAGS: -Wl,-rpath,'$ORIGIN' -L${SRCDIR}/../../bin -lwhisper
*/
import "C"
