/*
Package tokenizer splits raw input tokens around their checkable core.

A token like "!!!Hello," separates into leading punctuation, the core word
handed to the engine, and trailing punctuation. After a correction the
core is swapped out and the punctuation reattached, with the original
casing shape restored. Splitting is unicode-alphanumeric only; there are
no locale rules here.
*/
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one whitespace-delimited chunk of input split around its
// alphanumeric core. Leading + Core + Trailing reassembles the raw token;
// a token without any alphanumeric rune keeps everything in Leading.
type Token struct {
	Leading  string
	Core     string
	Trailing string
}

// Fields splits a line into raw tokens on whitespace.
func Fields(line string) []string {
	return strings.Fields(line)
}

// Split cuts raw at its first and last alphanumeric runes. Interior
// punctuation stays inside the core, so "can't" survives as one word.
func Split(raw string) Token {
	runes := []rune(raw)
	first, last := -1, -1
	for i, r := range runes {
		if isWordRune(r) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return Token{Leading: raw}
	}
	return Token{
		Leading:  string(runes[:first]),
		Core:     string(runes[first : last+1]),
		Trailing: string(runes[last+1:]),
	}
}

// Raw reassembles the original token.
func (t Token) Raw() string {
	return t.Leading + t.Core + t.Trailing
}

// Rejoin swaps the core for replacement and reattaches the surrounding
// punctuation.
func (t Token) Rejoin(replacement string) string {
	return t.Leading + replacement + t.Trailing
}

// MatchCase reshapes replacement to the casing of original: an all-caps
// original yields an all-caps replacement, a leading capital carries
// over, anything else passes through untouched.
func MatchCase(original, replacement string) string {
	if original == "" || replacement == "" {
		return replacement
	}
	if utf8.RuneCountInString(original) > 1 && isAllUpper(original) {
		return strings.ToUpper(replacement)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		head, size := utf8.DecodeRuneInString(replacement)
		return string(unicode.ToUpper(head)) + replacement[size:]
	}
	return replacement
}

func isAllUpper(s string) bool {
	sawLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		sawLetter = true
	}
	return sawLetter
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
