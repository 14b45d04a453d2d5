package util

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses every whitespace run to a single space and truncates
// the result to at most limit characters. Truncation is silent: it bounds
// the size of what is sent to the analysis provider, it is not an error.
func CleanText(text string, limit int) string {
	cleaned := whitespaceRun.ReplaceAllString(text, " ")
	runes := []rune(cleaned)
	if limit >= 0 && len(runes) > limit {
		cleaned = string(runes[:limit])
	}
	return cleaned
}

// TextLength is the "token" approximation recorded per analysis: the number
// of characters in the cleaned text, not a real tokenizer count.
func TextLength(text string) int {
	return len([]rune(text))
}

// NormalizeEmail lowercases and trims an email address for use as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
