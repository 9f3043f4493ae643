package layout

import (
	"math"
	"strings"

	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/text"
)

// Anchor is a located byline occurrence on a page
type Anchor struct {
	// Word is the matched word, or a synthetic word spanning the adjacent
	// words that together spell the phrase
	Word model.Word

	// Index is the position of the first matched word in the page's word slice
	Index int

	// Span is the number of page words merged into Word (1 for a single token)
	Span int

	// Context is the line the anchor sits on, used to tell a real byline
	// from prose or a photo credit that mentions the name
	Context Line
}

// Top returns the top of the anchor word
func (a Anchor) Top() float64 { return a.Word.Top() }

// Bottom returns the bottom of the anchor word
func (a Anchor) Bottom() float64 { return a.Word.Bottom() }

// AnchorConfig holds configuration for byline anchor detection
type AnchorConfig struct {
	// Phrase is the author name to search for, e.g. "Jake Wray".
	// Matching is case-sensitive.
	Phrase string

	// ContextTolerance is the line tolerance used to build the anchor's
	// context line and to require merged words to share a row (default: 3)
	ContextTolerance float64
}

// DefaultAnchorConfig returns default configuration for the given phrase
func DefaultAnchorConfig(phrase string) AnchorConfig {
	return AnchorConfig{
		Phrase:           phrase,
		ContextTolerance: DefaultLineConfig().Tolerance,
	}
}

// AnchorDetector finds byline anchors in a word stream
type AnchorDetector struct {
	config AnchorConfig
	parts  []string
	lines  *LineGrouper
}

// NewAnchorDetector creates an anchor detector for phrase with default settings
func NewAnchorDetector(phrase string) *AnchorDetector {
	return NewAnchorDetectorWithConfig(DefaultAnchorConfig(phrase))
}

// NewAnchorDetectorWithConfig creates an anchor detector with custom configuration
func NewAnchorDetectorWithConfig(config AnchorConfig) *AnchorDetector {
	return &AnchorDetector{
		config: config,
		parts:  strings.Fields(config.Phrase),
		lines:  NewLineGrouperWithConfig(LineConfig{Tolerance: config.ContextTolerance}),
	}
}

// Detect returns every anchor in words, in word order. A single word matches
// when its repaired text contains every part of the phrase. Otherwise a run of
// adjacent words on the same row matches when the first equals the first part
// and each following word contains the next part; the run is merged into one
// synthetic word. A page without the phrase yields no anchors.
func (d *AnchorDetector) Detect(words []model.Word) []Anchor {
	if len(d.parts) == 0 {
		return nil
	}

	var anchors []Anchor
	for i := 0; i < len(words); i++ {
		w := words[i]
		token := repaired(w)

		if containsAll(token, d.parts) {
			anchors = append(anchors, Anchor{
				Word:    model.Word{Text: d.config.Phrase, Rect: w.Rect, FontSize: w.FontSize},
				Index:   i,
				Span:    1,
				Context: d.lines.LineOf(w, words),
			})
			continue
		}

		if len(d.parts) < 2 || token != d.parts[0] {
			continue
		}

		if span := d.matchRun(words, i); span > 0 {
			merged := model.MergeWords(words[i : i+span]...)
			merged.Text = d.config.Phrase
			anchors = append(anchors, Anchor{
				Word:    merged,
				Index:   i,
				Span:    span,
				Context: d.lines.LineOf(w, words),
			})
			i += span - 1
		}
	}

	return anchors
}

// matchRun returns the number of words starting at i that spell the phrase
// across adjacent words, or 0
func (d *AnchorDetector) matchRun(words []model.Word, i int) int {
	if i+len(d.parts) > len(words) {
		return 0
	}
	first := words[i]
	for k := 1; k < len(d.parts); k++ {
		next := words[i+k]
		if math.Abs(next.Top()-first.Top()) >= d.config.ContextTolerance {
			return 0
		}
		if !strings.Contains(repaired(next), d.parts[k]) {
			return 0
		}
	}
	return len(d.parts)
}

func repaired(w model.Word) string {
	return text.RepairToken(strings.TrimSpace(w.Text))
}

func containsAll(s string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
