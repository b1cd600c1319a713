// Package validation holds input validation for user-supplied settings.
package validation

import "strings"

const (
	// MaxKeywords bounds a user's tracked keyword set.
	MaxKeywords = 20
	// MaxKeywordLength bounds a single keyword.
	MaxKeywordLength = 100
)

// ValidateKeyword checks that a keyword is non-empty after trimming and within
// the length limit. Keywords are otherwise free-form search terms ("#AI",
// "my product"), so no character whitelist is applied.
func ValidateKeyword(keyword string) (bool, string) {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return false, "keyword must not be empty"
	}
	if len(trimmed) > MaxKeywordLength {
		return false, "keyword is too long"
	}
	return true, ""
}

// ValidateKeywords validates a full keyword set. Comparison is case-sensitive;
// duplicates within the set are rejected.
func ValidateKeywords(keywords []string) (bool, string) {
	if len(keywords) > MaxKeywords {
		return false, "too many keywords"
	}

	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if ok, msg := ValidateKeyword(k); !ok {
			return false, msg
		}
		if _, dup := seen[k]; dup {
			return false, "duplicate keyword: " + k
		}
		seen[k] = struct{}{}
	}
	return true, ""
}

// NormalizeKeywords trims surrounding whitespace from each keyword without
// changing case.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, strings.TrimSpace(k))
	}
	return out
}

// ValidTone reports whether the AI tone value is one the reply drafter accepts.
func ValidTone(tone string) bool {
	switch tone {
	case "professional", "casual", "friendly":
		return true
	}
	return false
}
