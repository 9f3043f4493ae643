package model

import (
	"math"
	"strings"
)

// Word is the atomic positioned text unit supplied by a page-geometry source.
// Words are values and are never modified after a page is loaded; operations
// that combine words (see MergeWords) return new values.
type Word struct {
	// Text is the word as extracted, without surrounding whitespace
	Text string

	// Rect is the bounding box of the word in page coordinates
	Rect Rect

	// FontSize is the size reported by the source. Zero means unknown,
	// in which case Size falls back to the box height.
	FontSize float64
}

// NewWord creates a word from its edges
func NewWord(text string, top, bottom, left, right, fontSize float64) Word {
	return Word{
		Text:     text,
		Rect:     NewRect(top, bottom, left, right),
		FontSize: fontSize,
	}
}

// Top returns the top edge
func (w Word) Top() float64 { return w.Rect.Top }

// Bottom returns the bottom edge
func (w Word) Bottom() float64 { return w.Rect.Bottom }

// Left returns the left edge
func (w Word) Left() float64 { return w.Rect.Left }

// Right returns the right edge
func (w Word) Right() float64 { return w.Rect.Right }

// Size returns the effective font size: the supplied size if positive,
// otherwise bottom - top.
func (w Word) Size() float64 {
	if w.FontSize > 0 {
		return w.FontSize
	}
	return w.Rect.Height()
}

// IsValid reports whether the word can take part in geometric comparisons.
// Words with an inverted or non-finite box, a negative or non-finite font
// size, or no visible text are malformed.
func (w Word) IsValid() bool {
	if !w.Rect.IsValid() {
		return false
	}
	if math.IsNaN(w.FontSize) || math.IsInf(w.FontSize, 0) || w.FontSize < 0 {
		return false
	}
	return strings.TrimSpace(w.Text) != ""
}

// MergeWords joins words into a single synthetic word whose box is the union
// of all boxes and whose text is the space-joined texts. The font size is
// the largest supplied size. The inputs are not modified.
func MergeWords(words ...Word) Word {
	if len(words) == 0 {
		return Word{}
	}

	merged := Word{
		Rect:     words[0].Rect,
		FontSize: words[0].FontSize,
	}
	parts := make([]string, 0, len(words))
	for i, w := range words {
		parts = append(parts, w.Text)
		if i > 0 {
			merged.Rect = merged.Rect.Union(w.Rect)
		}
		if w.FontSize > merged.FontSize {
			merged.FontSize = w.FontSize
		}
	}
	merged.Text = strings.Join(parts, " ")

	return merged
}
