package text

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// hyphenBreak matches a hyphen at the end of a line, joined to the next line
	hyphenBreak = regexp.MustCompile(`-\r?\n`)

	// lineBreaks matches a run of line breaks with any surrounding blanks
	lineBreaks = regexp.MustCompile(`[ \t]*(?:\r?\n[ \t]*)+`)

	// paragraphBreak matches a blank line
	paragraphBreak = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)
)

// Fold applies Unicode compatibility normalization (NFKC), which splits
// typographic ligatures such as "ﬁ" into their letters and maps full-width
// forms to ASCII. PDF text often carries these forms.
func Fold(s string) string {
	return norm.NFKC.String(s)
}

// Normalize prepares extracted body text: compatibility-folds it, removes
// end-of-line hyphenation ("con-\ntinued" becomes "continued"), collapses
// every run of line breaks to a single space, and trims the result.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = Fold(s)
	s = hyphenBreak.ReplaceAllString(s, "")
	s = lineBreaks.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Paragraphs splits text on blank lines and normalizes each paragraph.
// Empty paragraphs are dropped.
func Paragraphs(s string) []string {
	var out []string
	for _, part := range paragraphBreak.Split(s, -1) {
		if p := Normalize(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WordCount returns the number of whitespace-delimited words in s
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Truncate returns at most n characters of s. It never splits a character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
