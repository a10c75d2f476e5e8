package extract

import "strings"

// scanFallback is the permissive second pass, run only when the strict
// segmenter under-matched. Any plausible line becomes a candidate at fixed
// low confidence; the result is capped to bound false-positive noise.
func scanFallback(lines []string, rules ruleSet) []candidate {
	var out []candidate
	for _, line := range lines {
		if len(out) >= rules.tables.FallbackCap {
			break
		}
		if rules.isEndMarker(line) || rules.isSkippable(line) || rules.isSectionHeader(line) {
			continue
		}
		if len(line) < 4 || len(line) > 80 || !hasLetter(line) {
			continue
		}
		if reDateToken.MatchString(line) || reISODate.MatchString(line) {
			continue
		}
		if _, ok := parseBarePrice(line); ok {
			continue
		}
		if name, price, ok := parseNamePrice(line); ok {
			out = append(out, candidate{name: name, price: price, confidence: confFallback})
			continue
		}
		price := rules.tables.EstimatePrice(strings.ToLower(line))
		out = append(out, candidate{name: line, price: price, confidence: confFallback})
	}
	return out
}
