// Package layout provides the geometric detectors that turn a page's word
// stream into article parts: lines, byline anchors, headlines, body regions
// and associated images.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/text"
)

// Line is a group of words sharing (nearly) the same top offset, ordered left
// to right. Lines are recomputed on demand and never stored with a page.
type Line struct {
	// Words are the words of the line, sorted by left edge
	Words []model.Word

	// Rect is the union of the word boxes
	Rect model.Rect
}

// Text returns the repaired words of the line joined by single spaces
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		parts = append(parts, text.RepairToken(strings.TrimSpace(w.Text)))
	}
	return strings.Join(parts, " ")
}

// Top returns the smallest top offset in the line
func (l Line) Top() float64 {
	return l.Rect.Top
}

// Height returns the height of the tallest word in the line
func (l Line) Height() float64 {
	h := 0.0
	for _, w := range l.Words {
		h = math.Max(h, w.Rect.Height())
	}
	return h
}

// LineConfig holds configuration for line grouping
type LineConfig struct {
	// Tolerance is the maximum top-offset difference (exclusive) for two
	// words to share a line, in page units (default: 3)
	Tolerance float64
}

// DefaultLineConfig returns the configuration used for byline context lines
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Tolerance: 3.0,
	}
}

// LineGrouper groups words into lines by top offset
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{
		config: DefaultLineConfig(),
	}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	return &LineGrouper{
		config: config,
	}
}

// LineOf returns the line containing w: every word of words whose top differs
// from w's top by less than the tolerance, sorted by left edge. w itself is
// included only if it is an element of words.
func (g *LineGrouper) LineOf(w model.Word, words []model.Word) Line {
	var members []model.Word
	for _, candidate := range words {
		if math.Abs(candidate.Top()-w.Top()) < g.config.Tolerance {
			members = append(members, candidate)
		}
	}
	return newLine(members)
}

// Group clusters words into lines ordered top to bottom. Words are taken in
// top order and a new line starts whenever a word's top is at least the
// tolerance below the first word of the current line.
//
// Membership is measured from each line's first word, so it is not
// transitive: with tolerance 3, tops 0, 2.9 and 3.5 group as {0, 2.9} and
// {3.5} although 2.9 and 3.5 are within tolerance. Every pair inside a line
// is within tolerance. Use LineOf for the line around a specific word.
func (g *LineGrouper) Group(words []model.Word) []Line {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top() != sorted[j].Top() {
			return sorted[i].Top() < sorted[j].Top()
		}
		return sorted[i].Left() < sorted[j].Left()
	})

	var lines []Line
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i].Top()-sorted[start].Top() >= g.config.Tolerance {
			lines = append(lines, newLine(sorted[start:i]))
			start = i
		}
	}

	return lines
}

// newLine copies words into a line sorted by left edge
func newLine(words []model.Word) Line {
	if len(words) == 0 {
		return Line{}
	}

	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Left() < sorted[j].Left()
	})

	rect := sorted[0].Rect
	for _, w := range sorted[1:] {
		rect = rect.Union(w.Rect)
	}

	return Line{Words: sorted, Rect: rect}
}
