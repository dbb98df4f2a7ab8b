package subtitle

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var timeRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[,\.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,\.]\d{3})`)

// Parse reads an SRT document back into cues. Entries without text are
// dropped, matching what Format emits.
func Parse(r io.Reader) ([]Cue, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)

	var current *Cue
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			if current != nil && !current.IsEmpty() {
				cues = append(cues, *current)
			}
			current = nil
			lineNum = 0
			continue
		}

		lineNum++
		switch lineNum {
		case 1:
			if index, err := strconv.Atoi(line); err == nil {
				current = &Cue{Index: index}
			}
		case 2:
			if current != nil {
				if m := timeRegex.FindStringSubmatch(line); len(m) == 3 {
					current.Start = ParseTimestamp(m[1])
					current.End = ParseTimestamp(m[2])
				}
			}
		default:
			if current != nil {
				if current.Text != "" {
					current.Text += " "
				}
				current.Text += line
			}
		}
	}
	if current != nil && !current.IsEmpty() {
		cues = append(cues, *current)
	}
	return cues, scanner.Err()
}

// ParseString parses SRT content held in a string.
func ParseString(content string) ([]Cue, error) {
	return Parse(strings.NewReader(content))
}
