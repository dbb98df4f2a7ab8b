// Package media wraps the ffmpeg and ffprobe binaries for the audio
// handling the service needs: converting uploads to the 16 kHz mono WAV
// the recognizer expects, probing durations, cutting segment files and
// detecting silence.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// FFmpeg invokes ffmpeg/ffprobe with auto-detected binary paths.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// New locates ffmpeg in the usual install locations and falls back to
// whatever PATH resolves. ASRD_FFMPEG_BIN overrides discovery.
func New() *FFmpeg {
	if v := os.Getenv("ASRD_FFMPEG_BIN"); v != "" {
		return NewWithPath(v)
	}
	paths := []string{
		"/opt/homebrew/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
		"ffmpeg",
	}

	ffmpegPath := "ffmpeg"
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			ffmpegPath = p
			break
		}
	}
	return NewWithPath(ffmpegPath)
}

// NewWithPath uses the given ffmpeg binary; ffprobe is assumed to live
// next to it.
func NewWithPath(path string) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  path,
		ffprobePath: strings.Replace(path, "ffmpeg", "ffprobe", 1),
	}
}

// CheckInstalled verifies both binaries run.
func (f *FFmpeg) CheckInstalled() error {
	if err := exec.Command(f.ffmpegPath, "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg not found at %s: %w", f.ffmpegPath, err)
	}
	if err := exec.Command(f.ffprobePath, "-version").Run(); err != nil {
		return fmt.Errorf("ffprobe not found at %s: %w", f.ffprobePath, err)
	}
	return nil
}

// Path returns the ffmpeg executable path.
func (f *FFmpeg) Path() string {
	return f.ffmpegPath
}

// Duration probes the length of a media file.
func (f *FFmpeg) Duration(ctx context.Context, path string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := exec.CommandContext(ctx, f.ffprobePath, args...).Output()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &seconds); err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(string(out)), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// ToWAV converts any input ffmpeg can decode into 16 kHz mono signed
// 16-bit PCM, the input format the recognizer expects.
func (f *FFmpeg) ToWAV(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}
	return f.run(ctx, args, "wav conversion")
}

// Slice cuts [start, end) out of a WAV file into its own 16 kHz mono
// PCM file.
func (f *FFmpeg) Slice(ctx context.Context, inputPath, outputPath string, start, end time.Duration) error {
	if end <= start {
		return fmt.Errorf("invalid slice window %v..%v", start, end)
	}
	args := []string{
		"-i", inputPath,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-ar", "16000",
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}
	return f.run(ctx, args, "slice")
}

// run executes ffmpeg and surfaces its output on failure.
func (f *FFmpeg) run(ctx context.Context, args []string, operation string) error {
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg %s failed: %w\noutput: %s", operation, err, string(output))
	}
	return nil
}

// formatSeconds renders a duration as fractional seconds for ffmpeg
// arguments, millisecond precision.
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
