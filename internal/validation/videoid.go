package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// videoIDPatterns are tried in order; the first match wins
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:shorts/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`^([0-9A-Za-z_-]{11})$`),
}

// ExtractVideoID returns the 11 character video id in s.
// Accepted shapes: watch?v=, youtu.be/, embed/, shorts/ URLs and a bare id.
func ExtractVideoID(s string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(s); len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}

// TruncateText keeps at most max characters of s
func TruncateText(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
