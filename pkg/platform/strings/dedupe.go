// Package strings provides normalization helpers for user-supplied lists.
package strings

import (
	"strings"
)

// DedupeAndTrimLower normalizes a list of user-supplied tags (languages,
// service types): each element is trimmed and lowercased, empties are
// dropped, and the first occurrence wins. Order is preserved.
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
