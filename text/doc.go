// Package text cleans text pulled from newspaper page geometry.
//
// # Glyph Repair
//
// Some issues were typeset with fonts whose text layer emits every glyph
// twice, so that "BLACK" extracts as "BBLLAACCKK". [RepairToken] detects the
// pattern on a single token and keeps every other character; [Repair] does the
// same for each whitespace-delimited token in a string:
//
//	text.Repair("BBLLAACCKK Friday") // "BLACK Friday"
//
// Repair is idempotent and never joins or splits tokens.
//
// # Normalization
//
// [Normalize] turns region text into a single running paragraph: ligatures
// and other compatibility forms are folded, end-of-line hyphenation is joined,
// and line breaks become single spaces. [Paragraphs] does the same per
// blank-line-delimited paragraph.
package text
