// Package label converts arbitrary strings and command-line argument lists
// into cloud-compatible job labels.
//
// Labels are lowercase, limited to [a-z0-9_-], at most 63 characters, and
// keys must start with a letter. Inputs are sanitized rather than rejected,
// so every function in this package is total.
package label

import (
	"regexp"
	"strings"
)

// MaxLen is the maximum length of a label key or value.
const MaxLen = 63

var invalidChars = regexp.MustCompile(`[^a-z0-9_-]`)

// Pair is a raw key/value pair, prior to sanitization.
type Pair struct {
	Key   string
	Value string
}

// Clean processes a raw string into the sanitized label format: leading
// dashes are stripped, the remainder is lowercased, every character outside
// [a-z0-9_-] is removed, and the result is truncated to [MaxLen] characters.
//
// If isKey is set and the cleaned string does not start with a letter, a "k"
// is prepended before truncation.
func Clean(raw string, isKey bool) string {
	if raw == "" {
		return ""
	}

	cleaned := invalidChars.ReplaceAllString(strings.ToLower(strings.TrimLeft(raw, "-")), "")

	if isKey && cleaned != "" && !isLetter(cleaned[0]) {
		cleaned = "k" + cleaned
	}

	return truncate(cleaned, MaxLen)
}

// Key sanitizes a string for use as a label key.
func Key(s string) string {
	return Clean(s, true)
}

// Value sanitizes a string for use as a label value.
func Value(s string) string {
	return Clean(s, false)
}

// FromPairs sanitizes both sides of each pair and assembles the result into
// a label map. Pairs whose key sanitizes to the empty string are dropped.
func FromPairs(pairs []Pair) map[string]string {
	ret := map[string]string{}
	for _, p := range pairs {
		k := Key(p.Key)
		if k == "" {
			continue
		}

		ret[k] = Value(p.Value)
	}

	return ret
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return s[:maxLen]
}
