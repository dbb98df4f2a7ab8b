package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSilenceNoise = "-35dB"
	defaultSilenceMin   = 500 * time.Millisecond
)

// Silence is one detected silent stretch in a file.
type Silence struct {
	Start time.Duration
	End   time.Duration
}

// DetectSilence runs the silencedetect filter and returns every silent
// stretch at least minDuration long, quieter than the noise threshold
// (ffmpeg notation, e.g. "-35dB"). Empty or zero arguments select the
// package defaults. A silence still open at end of file comes back with
// End == -1; callers close it against the known file length.
func (f *FFmpeg) DetectSilence(ctx context.Context, path string, noise string, minDuration time.Duration) ([]Silence, error) {
	if noise == "" {
		noise = defaultSilenceNoise
	}
	if minDuration <= 0 {
		minDuration = defaultSilenceMin
	}

	filter := fmt.Sprintf("silencedetect=noise=%s:d=%s", noise, formatSeconds(minDuration))
	cmd := exec.CommandContext(ctx, f.ffmpegPath, "-i", path, "-af", filter, "-f", "null", "-")
	// silencedetect reports on stderr.
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffmpeg silencedetect failed: %w\noutput: %s", err, string(output))
	}
	return parseSilences(string(output)), nil
}

// parseSilences extracts silence_start/silence_end pairs from ffmpeg
// output. An unmatched trailing start yields End == -1 for the caller
// to close.
func parseSilences(output string) []Silence {
	var silences []Silence
	var start time.Duration
	open := false

	for _, line := range strings.Split(output, "\n") {
		if idx := strings.Index(line, "silence_start:"); idx >= 0 {
			if v, ok := parseSecondsField(line[idx+len("silence_start:"):]); ok {
				start = v
				open = true
			}
			continue
		}
		if idx := strings.Index(line, "silence_end:"); idx >= 0 {
			v, ok := parseSecondsField(line[idx+len("silence_end:"):])
			if !ok {
				continue
			}
			if !open {
				start = 0
			}
			silences = append(silences, Silence{Start: start, End: v})
			open = false
		}
	}
	if open {
		silences = append(silences, Silence{Start: start, End: -1})
	}
	return silences
}

// parseSecondsField reads the first whitespace-separated token as
// fractional seconds.
func parseSecondsField(s string) (time.Duration, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)), true
}
