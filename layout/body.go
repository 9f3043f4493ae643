package layout

import (
	"strings"

	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/text"
)

// Body is the article text found below a byline anchor
type Body struct {
	// Text is the repaired body as one running paragraph
	Text string

	// Paragraphs are the repaired body paragraphs, split where the vertical
	// gap between lines is larger than a line break
	Paragraphs []string

	// WordCount is the number of words in Text
	WordCount int

	// Region is the page area the text was taken from
	Region model.Rect
}

// BodyConfig holds configuration for body extraction
type BodyConfig struct {
	// Margin is the gap left below the anchor before the body region
	// starts, in page units (default: 5)
	Margin float64

	// LineTolerance groups region words into rows (default: 3)
	LineTolerance float64

	// ParagraphGap is the top-to-top distance between consecutive rows,
	// as a multiple of the upper row's height, above which a paragraph
	// break is assumed (default: 1.5)
	ParagraphGap float64
}

// DefaultBodyConfig returns sensible default configuration
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Margin:        5.0,
		LineTolerance: 3.0,
		ParagraphGap:  1.5,
	}
}

// BodyExtractor crops the page below an anchor and extracts the region text
type BodyExtractor struct {
	config BodyConfig
	lines  *LineGrouper
}

// NewBodyExtractor creates a body extractor with default configuration
func NewBodyExtractor() *BodyExtractor {
	return NewBodyExtractorWithConfig(DefaultBodyConfig())
}

// NewBodyExtractorWithConfig creates a body extractor with custom configuration
func NewBodyExtractorWithConfig(config BodyConfig) *BodyExtractor {
	return &BodyExtractor{
		config: config,
		lines:  NewLineGrouperWithConfig(LineConfig{Tolerance: config.LineTolerance}),
	}
}

// Region returns the crop rectangle for an anchor: from just below the
// anchor's bottom edge to the bottom of the page, across the full width.
func (e *BodyExtractor) Region(anchor Anchor, bounds model.Rect) model.Rect {
	return model.Rect{
		Top:    anchor.Bottom() + e.config.Margin,
		Bottom: bounds.Bottom,
		Left:   bounds.Left,
		Right:  bounds.Right,
	}
}

// Extract returns the normalized, repaired body text below anchor. No upper
// length limit is applied.
func (e *BodyExtractor) Extract(anchor Anchor, bounds model.Rect, words []model.Word) Body {
	region := e.Region(anchor, bounds)
	raw := e.RegionText(region, words)

	var paragraphs []string
	for _, p := range text.Paragraphs(raw) {
		paragraphs = append(paragraphs, text.Repair(p))
	}

	body := text.Repair(text.Normalize(raw))

	return Body{
		Text:       body,
		Paragraphs: paragraphs,
		WordCount:  text.WordCount(body),
		Region:     region,
	}
}

// RegionText assembles the words whose top lies inside region into text:
// words of a row are joined by spaces, rows by line breaks, and rows
// separated by a large vertical gap by a blank line.
func (e *BodyExtractor) RegionText(region model.Rect, words []model.Word) string {
	var inside []model.Word
	for _, w := range words {
		if w.Top() >= region.Top && w.Top() <= region.Bottom && region.Intersects(w.Rect) {
			inside = append(inside, w)
		}
	}

	lines := e.lines.Group(inside)

	var sb strings.Builder
	for i, line := range lines {
		for j, w := range line.Words {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.TrimSpace(w.Text))
		}

		if i < len(lines)-1 {
			gap := lines[i+1].Top() - line.Top()
			if gap > line.Height()*e.config.ParagraphGap {
				sb.WriteString("\n\n")
			} else {
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}
