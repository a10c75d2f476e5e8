package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// splitLines collapses common OCR whitespace artifacts and returns the
// transcript as trimmed, non-empty lines in order. Never fails; may return
// an empty slice.
func splitLines(raw string) []string {
	s := reCRLF.ReplaceAllString(raw, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")

	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// usable reports whether there is anything to extract from: at least one
// line containing a letter.
func usable(lines []string) bool {
	for _, l := range lines {
		if hasLetter(l) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
