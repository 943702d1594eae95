package utils

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	unsafeChars = regexp.MustCompile(`[^\w-]`)
)

// CleanText collapses runs of whitespace and trims the result.
func CleanText(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// SanitizeFilename reduces a string to the filesystem-safe class
// [0-9A-Za-z_-] by replacing every other character with an underscore.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// TruncateText cuts text to at most maxLength bytes. SanitizeFilename
// output is ASCII, so byte truncation cannot split a rune there.
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	return text[:maxLength]
}
