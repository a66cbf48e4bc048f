package util

import (
	"unicode/utf8"
)

// Excerpt returns at most max runes of s, for logging untrusted input.
// An ellipsis marks a cut.
func Excerpt(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
