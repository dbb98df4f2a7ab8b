// Package subtitle renders and parses SRT, the format the transcription
// endpoint returns segment results in.
package subtitle

import (
	"strconv"
	"strings"
	"time"
)

// Cue is a single SRT entry.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Duration returns the cue length.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// IsEmpty reports whether the cue has no text.
func (c Cue) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Format renders cues as an SRT document. Entries are separated by a
// blank line with no trailing newline, which is the exact payload shape
// the transcription endpoint returns.
func Format(cues []Cue) string {
	var b strings.Builder
	for i, c := range cues {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(c.Index))
		b.WriteByte('\n')
		b.WriteString(FormatTimestamp(c.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(c.End))
		b.WriteByte('\n')
		b.WriteString(c.Text)
	}
	return b.String()
}
