// Package segment turns silence detection results into the list of time
// windows the recognizer transcribes. Speech is the complement of the
// detected silences; windows that run too long are split into roughly
// equal parts so no single transcription call dominates an instance.
package segment

import (
	"sort"
	"time"

	"asrd/internal/media"
)

const (
	defaultMaxSegment = 6 * time.Second
	defaultMinSpeech  = 100 * time.Millisecond
)

// Span is one half-open [Start, End) window of the source audio.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the window length.
func (s Span) Duration() time.Duration {
	return s.End - s.Start
}

// Config tunes the planner. Zero values select the defaults.
type Config struct {
	// MaxSegment is the longest window passed to the recognizer; longer
	// speech is split evenly.
	MaxSegment time.Duration
	// MinSpeech drops slivers shorter than this between silences.
	MinSpeech time.Duration
}

// Planner builds transcription windows from silence scans.
type Planner struct {
	maxSegment time.Duration
	minSpeech  time.Duration
}

func New(cfg Config) *Planner {
	if cfg.MaxSegment <= 0 {
		cfg.MaxSegment = defaultMaxSegment
	}
	if cfg.MinSpeech <= 0 {
		cfg.MinSpeech = defaultMinSpeech
	}
	return &Planner{maxSegment: cfg.MaxSegment, minSpeech: cfg.MinSpeech}
}

// Plan returns the windows to transcribe for a file of the given total
// length. With no silences the whole file is treated as one speech span
// before splitting. Spans come back in playback order.
func (p *Planner) Plan(total time.Duration, silences []media.Silence) []Span {
	if total <= 0 {
		return nil
	}

	var out []Span
	for _, sp := range speechSpans(total, silences) {
		if sp.Duration() < p.minSpeech {
			continue
		}
		out = append(out, splitSpan(sp, p.maxSegment)...)
	}
	return out
}

// speechSpans inverts the silence list over [0, total]. A silence with
// End < 0 is still open at end of file and closes at total.
func speechSpans(total time.Duration, silences []media.Silence) []Span {
	sorted := make([]media.Silence, 0, len(silences))
	for _, s := range silences {
		if s.End < 0 || s.End > total {
			s.End = total
		}
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End <= s.Start {
			continue
		}
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var spans []Span
	cursor := time.Duration(0)
	for _, s := range sorted {
		if s.Start > cursor {
			spans = append(spans, Span{Start: cursor, End: s.Start})
		}
		if s.End > cursor {
			cursor = s.End
		}
	}
	if cursor < total {
		spans = append(spans, Span{Start: cursor, End: total})
	}
	return spans
}

// splitSpan cuts a long span into equal millisecond-aligned parts, the
// last part absorbing the division remainder.
func splitSpan(s Span, max time.Duration) []Span {
	if s.Duration() <= max {
		return []Span{s}
	}

	startMs := s.Start.Milliseconds()
	endMs := s.End.Milliseconds()
	durMs := endMs - startMs
	maxMs := max.Milliseconds()

	num := durMs/maxMs + 1
	if num < 2 {
		num = 2
	}
	each := durMs / num

	parts := make([]Span, 0, num)
	for i := int64(0); i < num; i++ {
		partStart := startMs + i*each
		partEnd := startMs + (i+1)*each
		if i == num-1 {
			partEnd = endMs
		}
		if partEnd <= partStart {
			continue
		}
		parts = append(parts, Span{
			Start: time.Duration(partStart) * time.Millisecond,
			End:   time.Duration(partEnd) * time.Millisecond,
		})
	}
	return parts
}
