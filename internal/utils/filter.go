package utils

import (
	"unicode"
	"unicode/utf8"
)

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// HasLetter checks if a string contains at least one letter rune
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsCheckable checks if a token is worth running through the engine.
// Returns false for empty strings, anything carrying digits (versions,
// hex ids, "x86"), and strings without a single letter.
func IsCheckable(s string) bool {
	if len(s) == 0 {
		return false
	}

	if ContainsNumbers(s) {
		return false
	}

	return HasLetter(s)
}

// ExceedsLength checks if a string is longer than max runes. A max of
// zero or below disables the limit.
func ExceedsLength(s string, max int) bool {
	if max <= 0 {
		return false
	}
	return utf8.RuneCountInString(s) > max
}
