// Package pdfsource reads page geometry from PDF files.
//
// Documents are loaded and validated with pdfcpu. For each page the content
// stream is tokenized and the text operators (BT/ET, Tf, Tm, Td, TD, T*, TL,
// Tc, Tw, Tz, Ts, Tj, TJ, ', ") are interpreted together with the graphics
// state (q, Q, cm) to place every shown character. Characters are then
// joined into words on spaces, baseline changes and horizontal gaps.
//
// Images are extracted with pdfcpu and positioned by the Do operator that
// draws them.
//
// # Limitations
//
// Strings are decoded as WinAnsi (Windows-1252). Fonts with a ToUnicode map
// or a two-byte encoding produce unreadable words. Glyph widths are
// estimated from the font size rather than read from font metrics, so word
// boxes are approximate. Text and images inside form XObjects are not
// visited. Invisible text (rendering mode 3), as written by OCR tools under
// a page scan, is extracted like any other text.
package pdfsource
