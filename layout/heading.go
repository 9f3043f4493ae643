package layout

import (
	"math"
	"strings"

	"github.com/tsawler/morgue/model"
)

// Headline is the large-type text found above a byline anchor
type Headline struct {
	// Text is the headline in reading order, repaired
	Text string

	// Lines are the headline lines, top to bottom
	Lines []Line

	// Rect is the union of the headline word boxes
	Rect model.Rect

	// Size is the largest font size found in the search zone
	Size float64
}

// Top returns the top of the first headline line
func (h Headline) Top() float64 {
	return h.Rect.Top
}

// WordCount returns the number of words in the headline text
func (h Headline) WordCount() int {
	return len(strings.Fields(h.Text))
}

// HeadlineConfig holds configuration for headline detection
type HeadlineConfig struct {
	// LookBack is how far above the anchor the search zone reaches, in page
	// units. It keeps an unrelated article's headline higher up the page out
	// of the zone (default: 300)
	LookBack float64

	// MinSize is the smallest maximum font size that counts as a headline.
	// Anchors with only body-size text above them have no headline (default: 14)
	MinSize float64

	// SizeRatio selects headline words: a word belongs to the headline when
	// its size exceeds SizeRatio × the zone's maximum size. Words at the
	// maximum size always belong, so 1 selects exactly those (default: 0.9)
	SizeRatio float64

	// LineTolerance groups headline words that share a row (default: 5)
	LineTolerance float64

	// MaxLines, when positive, keeps only that many headline lines closest
	// to the anchor. Zero keeps every line of headline size in the zone.
	MaxLines int
}

// DefaultHeadlineConfig returns sensible default configuration
func DefaultHeadlineConfig() HeadlineConfig {
	return HeadlineConfig{
		LookBack:      300.0,
		MinSize:       14.0,
		SizeRatio:     0.9,
		LineTolerance: 5.0,
		MaxLines:      0,
	}
}

// HeadlineDetector finds the headline belonging to a byline anchor
type HeadlineDetector struct {
	config HeadlineConfig
	lines  *LineGrouper
}

// NewHeadlineDetector creates a headline detector with default configuration
func NewHeadlineDetector() *HeadlineDetector {
	return NewHeadlineDetectorWithConfig(DefaultHeadlineConfig())
}

// NewHeadlineDetectorWithConfig creates a headline detector with custom configuration
func NewHeadlineDetectorWithConfig(config HeadlineConfig) *HeadlineDetector {
	return &HeadlineDetector{
		config: config,
		lines:  NewLineGrouperWithConfig(LineConfig{Tolerance: config.LineTolerance}),
	}
}

// Detect searches the zone strictly above the anchor, no further than
// LookBack, for the run of words at (near-)maximum font size. It returns
// false when the zone is empty or its largest text is below MinSize.
//
// Words of headline size on different rows are joined top to bottom. This
// assembles a wrapped headline correctly, and can also pull in an unrelated
// large-type element in the zone; MaxLines bounds that.
func (d *HeadlineDetector) Detect(anchor Anchor, words []model.Word) (Headline, bool) {
	zoneTop := math.Max(0, anchor.Top()-d.config.LookBack)

	var zone []model.Word
	maxSize := 0.0
	for _, w := range words {
		if w.Top() > zoneTop && w.Top() < anchor.Top() {
			zone = append(zone, w)
			maxSize = math.Max(maxSize, w.Size())
		}
	}

	if len(zone) == 0 || maxSize < d.config.MinSize {
		return Headline{}, false
	}

	threshold := maxSize * d.config.SizeRatio
	var selected []model.Word
	for _, w := range zone {
		if w.Size() > threshold || w.Size() == maxSize {
			selected = append(selected, w)
		}
	}

	lines := d.lines.Group(selected)
	if len(lines) == 0 {
		return Headline{}, false
	}
	if d.config.MaxLines > 0 && len(lines) > d.config.MaxLines {
		lines = lines[len(lines)-d.config.MaxLines:]
	}

	parts := make([]string, 0, len(lines))
	rect := lines[0].Rect
	for _, l := range lines {
		parts = append(parts, l.Text())
		rect = rect.Union(l.Rect)
	}

	headline := Headline{
		Text:  strings.Join(parts, " "),
		Lines: lines,
		Rect:  rect,
		Size:  maxSize,
	}
	if strings.TrimSpace(headline.Text) == "" {
		return Headline{}, false
	}

	return headline, true
}
