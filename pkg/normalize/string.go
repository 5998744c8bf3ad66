package normalize

import (
	"strings"
	"unicode"
)

// TrimAndCollapse trims the string and collapses internal whitespace runs
// to single spaces.
func TrimAndCollapse(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// Email lowercases and trims an address. Format validation is the
// validator's job; this only fixes the stored representation.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StringList trims every entry, drops the ones that reduce to nothing and
// removes duplicates while preserving order.
func StringList(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := TrimAndCollapse(item)
		if normalized == "" {
			continue
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}
