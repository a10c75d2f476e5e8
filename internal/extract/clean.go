package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grocerly/receipt-scan/internal/heuristics"
)

var (
	reOrganicLead  = regexp.MustCompile(`(?i)^(?:organic|org)\b[\s.:-]*`)
	reOrganicTrail = regexp.MustCompile(`(?i)[\s.:-]*\b(?:organic|org)$`)
	reSizeTrail    = regexp.MustCompile(`(?i)\s*\d+(?:\.\d+)?\s*(?:lb|oz|ct|gal)s?\.?\s*$`)
)

// cleanName strips organic and size/count qualifiers from a raw candidate
// name and title-cases the rest.
func cleanName(raw string) string {
	name := strings.TrimSpace(raw)
	name = reOrganicLead.ReplaceAllString(name, "")
	name = reOrganicTrail.ReplaceAllString(name, "")
	name = reSizeTrail.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	return cases.Title(language.English).String(strings.ToLower(name))
}

// buildItem turns a candidate into a validated item. Candidates failing the
// gate are dropped silently; receipts commonly contain irrecoverable noise
// and the caller's review screen is the place to fix the rest.
func buildItem(c candidate, tables heuristics.Tables) (ExtractedItem, bool) {
	name := cleanName(c.name)
	if !validItem(name, c.price) {
		return ExtractedItem{}, false
	}
	return ExtractedItem{
		Name:       name,
		Quantity:   1,
		Unit:       "each",
		Price:      c.price,
		Category:   tables.CategoryFor(strings.ToLower(name)),
		Confidence: c.confidence,
	}, true
}

func validItem(name string, price float64) bool {
	return len(name) >= 2 && hasLetter(name) && price > 0 && price < 500
}
