package extract

import "unicode"

// normalizeKey lowercases a name and strips all whitespace, giving the
// identity used for duplicate detection.
func normalizeKey(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}

// dedupe keeps the first occurrence of each normalized name. The primary
// pass is merged ahead of the fallback pass, so its higher-confidence
// entries win ties. Idempotent.
func dedupe(items []ExtractedItem) []ExtractedItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]ExtractedItem, 0, len(items))
	for _, item := range items {
		key := normalizeKey(item.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
