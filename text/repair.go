package text

import (
	"regexp"
	"unicode/utf8"
)

// minDoubledLength is the shortest token considered for glyph repair.
// Two-character tokens such as "aa" or "ll" are far more likely to be
// genuine than corrupted, so they are left alone.
const minDoubledLength = 4

// tokenPattern matches a whitespace-delimited token
var tokenPattern = regexp.MustCompile(`\S+`)

// IsDoubled reports whether token shows the doubled-glyph defect: an even
// number of characters, at least four, where every pair of positions
// (2i, 2i+1) holds the same character. "BBLLAACCKK" is doubled; "BOOK" is not.
func IsDoubled(token string) bool {
	n := utf8.RuneCountInString(token)
	if n < minDoubledLength || n%2 != 0 {
		return false
	}

	runes := []rune(token)
	for i := 0; i < len(runes); i += 2 {
		if runes[i] != runes[i+1] {
			return false
		}
	}
	return true
}

// undouble keeps every other character starting at index 0
func undouble(token string) string {
	runes := []rune(token)
	out := make([]rune, 0, len(runes)/2)
	for i := 0; i < len(runes); i += 2 {
		out = append(out, runes[i])
	}
	return string(out)
}

// RepairToken corrects a single doubled token and returns any other token
// unchanged.
//
// A token whose de-doubled form is itself doubled (for example "AAAAAAAA")
// is ambiguous: it could be one pass of corruption over "AAAA" or two over
// "AA". Such tokens are returned unchanged so that RepairToken is idempotent.
func RepairToken(token string) string {
	if !IsDoubled(token) {
		return token
	}
	fixed := undouble(token)
	if IsDoubled(fixed) {
		return token
	}
	return fixed
}

// Repair applies RepairToken to every whitespace-delimited token of s.
// Whitespace between tokens, including line and paragraph breaks, is kept
// as is; repair never crosses a token boundary.
func Repair(s string) string {
	if s == "" {
		return s
	}
	return tokenPattern.ReplaceAllStringFunc(s, RepairToken)
}
