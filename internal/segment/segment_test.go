package segment

import (
	"testing"
	"time"

	"asrd/internal/media"
)

func spans(t *testing.T, total time.Duration, silences []media.Silence, cfg Config) []Span {
	t.Helper()
	return New(cfg).Plan(total, silences)
}

func assertSpans(t *testing.T, got, want []Span) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d spans %+v, want %d %+v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("span %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPlanShortFileSingleSpan(t *testing.T) {
	got := spans(t, 5*time.Second, nil, Config{})
	assertSpans(t, got, []Span{{0, 5 * time.Second}})
}

func TestPlanSplitsLongSpeechEvenly(t *testing.T) {
	// 15s of speech, 6s cap: three 5s windows.
	got := spans(t, 15*time.Second, nil, Config{})
	assertSpans(t, got, []Span{
		{0, 5 * time.Second},
		{5 * time.Second, 10 * time.Second},
		{10 * time.Second, 15 * time.Second},
	})
}

func TestPlanLastPartAbsorbsRemainder(t *testing.T) {
	// 13s / 3 parts: 4333ms each, last takes the extra.
	got := spans(t, 13*time.Second, nil, Config{})
	assertSpans(t, got, []Span{
		{0, 4333 * time.Millisecond},
		{4333 * time.Millisecond, 8666 * time.Millisecond},
		{8666 * time.Millisecond, 13 * time.Second},
	})
}

func TestPlanInvertsSilences(t *testing.T) {
	silences := []media.Silence{{Start: 4 * time.Second, End: 6 * time.Second}}
	got := spans(t, 10*time.Second, silences, Config{})
	assertSpans(t, got, []Span{
		{0, 4 * time.Second},
		{6 * time.Second, 10 * time.Second},
	})
}

func TestPlanLeadingAndTrailingSilence(t *testing.T) {
	silences := []media.Silence{
		{Start: 0, End: 1 * time.Second},
		{Start: 9 * time.Second, End: 10 * time.Second},
	}
	// One 8s speech span, split in two.
	got := spans(t, 10*time.Second, silences, Config{})
	assertSpans(t, got, []Span{
		{1 * time.Second, 5 * time.Second},
		{5 * time.Second, 9 * time.Second},
	})
}

func TestPlanClosesOpenTrailingSilence(t *testing.T) {
	// End == -1 marks a silence still open at end of file.
	silences := []media.Silence{{Start: 6 * time.Second, End: -1}}
	got := spans(t, 10*time.Second, silences, Config{})
	assertSpans(t, got, []Span{{0, 6 * time.Second}})
}

func TestPlanDropsSpeechSlivers(t *testing.T) {
	silences := []media.Silence{{Start: 0, End: 9950 * time.Millisecond}}
	if got := spans(t, 10*time.Second, silences, Config{}); len(got) != 0 {
		t.Fatalf("expected sliver to be dropped, got %+v", got)
	}
}

func TestPlanHandlesUnsortedOverlappingSilences(t *testing.T) {
	silences := []media.Silence{
		{Start: 3 * time.Second, End: 6 * time.Second},
		{Start: 2 * time.Second, End: 5 * time.Second},
	}
	got := spans(t, 8*time.Second, silences, Config{})
	assertSpans(t, got, []Span{
		{0, 2 * time.Second},
		{6 * time.Second, 8 * time.Second},
	})
}

func TestPlanIgnoresDegenerateSilences(t *testing.T) {
	silences := []media.Silence{
		{Start: 5 * time.Second, End: 5 * time.Second},
		{Start: 7 * time.Second, End: 4 * time.Second},
	}
	got := spans(t, 6*time.Second, silences, Config{})
	assertSpans(t, got, []Span{{0, 6 * time.Second}})
}

func TestPlanEmptyFile(t *testing.T) {
	if got := spans(t, 0, nil, Config{}); got != nil {
		t.Fatalf("expected nil plan, got %+v", got)
	}
}

func TestPlanCustomMaxSegment(t *testing.T) {
	got := spans(t, 5*time.Second, nil, Config{MaxSegment: 2 * time.Second})
	// 5000ms / 3 parts = 1666ms each.
	assertSpans(t, got, []Span{
		{0, 1666 * time.Millisecond},
		{1666 * time.Millisecond, 3332 * time.Millisecond},
		{3332 * time.Millisecond, 5 * time.Second},
	})
}

func TestSpanDuration(t *testing.T) {
	s := Span{Start: time.Second, End: 3 * time.Second}
	if s.Duration() != 2*time.Second {
		t.Fatalf("duration %v, want 2s", s.Duration())
	}
}
