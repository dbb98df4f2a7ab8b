// Package text post-processes recognizer output before it reaches
// clients.
package text

import "regexp"

// unwantedRegex matches everything outside the allowed character set:
// CJK unified ideographs, hiragana, katakana, hangul, ASCII letters and
// digits, whitespace, common ASCII punctuation and the full-width
// punctuation East Asian recognizers emit.
var unwantedRegex = regexp.MustCompile(`[^\x{4e00}-\x{9fff}\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{ac00}-\x{d7af}` +
	`a-zA-Z0-9\s.,!@#$%^&*()_+\-=\[\]{};'"\\|<>/?，。！｛｝【】；‘’“”《》、（）￥]+`)

// Clean strips characters outside the allowed set. Leading and trailing
// whitespace is left for the caller to trim.
func Clean(s string) string {
	return unwantedRegex.ReplaceAllString(s, "")
}
