package textutil

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[0-9A-Za-z_]+`)

// Normalize lower-cases text for case-insensitive matching
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Lines splits text into individual lines, tolerating Windows line endings
func Lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// FirstNonBlankLine returns the first line containing non-whitespace content,
// trimmed, or the empty string if no such line exists
func FirstNonBlankLine(s string) string {
	for _, line := range Lines(s) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Tokenize splits text into lower-cased word tokens (letters, digits, underscore)
func Tokenize(s string) []string {
	return wordPattern.FindAllString(strings.ToLower(s), -1)
}

// TruncateRunes shortens a string to at most maxLen runes
func TruncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
