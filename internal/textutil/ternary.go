package textutil

import (
	"fmt"
	"unicode/utf8"
)

// Ternary is a generic conditional helper that returns a if cond is true, b otherwise.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// Truncate shortens s to at most limit runes, marking the cut with "…".
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// Pluralize formats n with word, adding "s" unless n is one.
func Pluralize(n int, word string) string {
	return fmt.Sprintf("%d %s", n, Ternary(n == 1, word, word+"s"))
}
