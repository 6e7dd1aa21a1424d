package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares free text for keyword matching: NFC composition so
// "é" typed as e + combining accent matches the tables, then lower case and trim.
func NormalizeText(text string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFC.String(text)))
}

// ContainsAny reports the first keyword, in slice order, that is a substring of text.
func ContainsAny(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// RuneLen returns the number of characters in text.
func RuneLen(text string) int {
	return utf8.RuneCountInString(text)
}

// Limit truncates items to at most n elements.
func Limit[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
