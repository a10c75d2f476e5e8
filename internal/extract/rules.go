package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/grocerly/receipt-scan/internal/heuristics"
)

var (
	reBarePrice = regexp.MustCompile(`^\$?(\d{1,4}\.\d{2})\s*[A-Za-z]?$`)
	reNamePrice = regexp.MustCompile(`^(.{2,}?)\s+\$?(\d{1,4}\.\d{2})\s*[A-Za-z]?$`)
	rePhone     = regexp.MustCompile(`\d{3}[-.\s)]\s?\d{3}[-.\s]\d{4}`)
	reAddress   = regexp.MustCompile(`(?i)^\d+\s+\w+.*\b(st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|hwy|suite|ste)\b`)
	reClockAMPM = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)\b`)
	reTimeToken = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
)

// ruleSet is a Tables value with its word lists compiled to matchers. Built
// once per Extractor; read-only afterwards.
type ruleSet struct {
	tables     heuristics.Tables
	endMarkers *regexp.Regexp
	skipWords  *regexp.Regexp
	sections   map[string]bool
}

func compileRules(t heuristics.Tables) ruleSet {
	sections := make(map[string]bool, len(t.SectionHeaders))
	for _, h := range t.SectionHeaders {
		sections[strings.ToUpper(h)] = true
	}
	return ruleSet{
		tables:     t,
		endMarkers: wordRegexp(t.EndMarkers),
		skipWords:  wordRegexp(t.SkipWords),
		sections:   sections,
	}
}

// wordRegexp builds a case-insensitive whole-word matcher for the given
// words. Returns nil for an empty list (matches nothing).
func wordRegexp(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// isEndMarker reports whether a line concludes the item list (subtotal,
// totals, payment, footer).
func (r ruleSet) isEndMarker(line string) bool {
	return r.endMarkers != nil && r.endMarkers.MatchString(line)
}

// isSkippable reports whether a line is known non-item boilerplate: store
// header chatter, payment metadata, addresses, phone numbers, timestamps.
func (r ruleSet) isSkippable(line string) bool {
	if r.skipWords != nil && r.skipWords.MatchString(line) {
		return true
	}
	return rePhone.MatchString(line) || reAddress.MatchString(line) || isTimestamp(line)
}

// isTimestamp matches timestamp-shaped lines only: a clock time with an
// AM/PM marker, or a bare time next to a date. A lone H:MM token is not
// enough; product names can contain ratio-like tokens.
func isTimestamp(line string) bool {
	if reClockAMPM.MatchString(line) {
		return true
	}
	return reTimeToken.MatchString(line) &&
		(reDateToken.MatchString(line) || reISODate.MatchString(line))
}

// isSectionHeader reports whether a line is a recognized department header.
func (r ruleSet) isSectionHeader(line string) bool {
	return r.sections[strings.ToUpper(strings.TrimSpace(line))]
}

// parseBarePrice matches a line that is only a price, optionally trailed by
// a single tax-code letter.
func parseBarePrice(line string) (float64, bool) {
	m := reBarePrice.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(m[1], 64)
	return price, err == nil
}

// parseNamePrice matches a combined "name $X.XX" or "name X.XX" line. The
// name part must contain a letter.
func parseNamePrice(line string) (string, float64, bool) {
	m := reNamePrice.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	name := strings.TrimSpace(m[1])
	if !hasLetter(name) {
		return "", 0, false
	}
	price, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	return name, price, true
}

// isNameCandidate reports whether a line plausibly names an item: contains
// a letter, reasonable length, and is not numeric/date/phone/price-shaped.
func isNameCandidate(line string) bool {
	if len(line) < 3 || len(line) > 100 {
		return false
	}
	if !hasLetter(line) {
		return false
	}
	if _, ok := parseBarePrice(line); ok {
		return false
	}
	if rePhone.MatchString(line) || reDateToken.MatchString(line) || reISODate.MatchString(line) {
		return false
	}
	return true
}
