package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// CollapseWhitespace trims the value and replaces every internal whitespace
// run with a single ASCII space.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Fold returns a comparison key for value: whitespace collapsed, full-width
// forms narrowed and case folded. Two strings with equal keys are considered
// the same lyric text.
func Fold(value string) string {
	// Casers carry state and are built per call.
	return cases.Fold().String(width.Fold.String(CollapseWhitespace(value)))
}

// EqualFold reports whether a and b have the same comparison key.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// RuneLen returns the number of code points in value.
func RuneLen(value string) int {
	return len([]rune(value))
}

// Slice returns the runes of value in [start, end), clamped to the string.
func Slice(value string, start, end int) string {
	runes := []rune(value)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
