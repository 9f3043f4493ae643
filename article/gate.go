package article

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/morgue/layout"
	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/text"
)

// Reason identifies the rule that rejected an anchor
type Reason int

const (
	ReasonNone Reason = iota
	ReasonContextTooLong
	ReasonCoAuthor
	ReasonPhotoCredit
	ReasonNoHeadline
	ReasonShortHeadline
	ReasonShortBody
)

// String returns a string representation of the reason
func (r Reason) String() string {
	switch r {
	case ReasonContextTooLong:
		return "context_too_long"
	case ReasonCoAuthor:
		return "co_author"
	case ReasonPhotoCredit:
		return "photo_credit"
	case ReasonNoHeadline:
		return "no_headline"
	case ReasonShortHeadline:
		return "short_headline"
	case ReasonShortBody:
		return "short_body"
	default:
		return "none"
	}
}

// Rejection records why an anchor did not produce a candidate. Rejections
// are an expected outcome of filtering, not errors.
type Rejection struct {
	Reason   Reason
	Filename string
	Page     int

	// Context is the byline context line of the rejected anchor
	Context string

	// Detail is the measured value that failed the rule, e.g. "142 words"
	Detail string
}

// GateConfig holds the thresholds of the rejection funnel
type GateConfig struct {
	// MaxContextChars is the longest byline line accepted. Longer lines are
	// prose that mentions the name (default: 50)
	MaxContextChars int

	// CoAuthorPhrases reject a byline line that credits the author as a
	// contributor, matched case-insensitively (default: "with files from")
	CoAuthorPhrases []string

	// CreditPhrases reject photo-credit lines, matched case-insensitively
	// (default: "photo", "credit")
	CreditPhrases []string

	// MinHeadlineWords is the fewest words a headline may have (default: 3)
	MinHeadlineWords int

	// MinBodyWords is the fewest body words accepted. It keeps captions and
	// pull-quotes that carry the byline out (default: 200)
	MinBodyWords int

	// ExcerptChars is the length of Candidate.Excerpt (default: 200)
	ExcerptChars int

	// SlugMaxChars bounds Candidate.Slug (default: 50)
	SlugMaxChars int
}

// DefaultGateConfig returns sensible default configuration
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MaxContextChars:  50,
		CoAuthorPhrases:  []string{"with files from"},
		CreditPhrases:    []string{"photo", "credit"},
		MinHeadlineWords: 3,
		MinBodyWords:     200,
		ExcerptChars:     200,
		SlugMaxChars:     50,
	}
}

// Gate runs the rejection funnel for an anchor and assembles the candidate
type Gate struct {
	config    GateConfig
	headlines *layout.HeadlineDetector
	bodies    *layout.BodyExtractor
	images    *layout.ImageAssociator
}

// NewGate creates a gate with default configuration and default detectors
func NewGate() *Gate {
	return NewGateWithConfig(
		DefaultGateConfig(),
		layout.NewHeadlineDetector(),
		layout.NewBodyExtractor(),
		layout.NewImageAssociator(),
	)
}

// NewGateWithConfig creates a gate with custom configuration and detectors
func NewGateWithConfig(config GateConfig, headlines *layout.HeadlineDetector, bodies *layout.BodyExtractor, images *layout.ImageAssociator) *Gate {
	return &Gate{
		config:    config,
		headlines: headlines,
		bodies:    bodies,
		images:    images,
	}
}

// Input is everything the gate needs to judge one anchor
type Input struct {
	// Page supplies the page number, bounds and images
	Page *model.Page

	// Words are the page's valid words (see model.Page.ValidWords)
	Words []model.Word

	// Anchor is the byline occurrence under test
	Anchor layout.Anchor

	// Filename is the source document name, used for the date
	Filename string
}

// Evaluate applies the rejection rules in order and stops at the first
// failure:
//
//  1. byline line longer than MaxContextChars
//  2. byline line contains a co-author phrase
//  3. byline line contains a photo-credit phrase
//  4. no headline above the anchor
//  5. headline shorter than MinHeadlineWords
//  6. body shorter than MinBodyWords
//
// On success it returns the assembled candidate and true.
func (g *Gate) Evaluate(in Input) (Candidate, Rejection, bool) {
	byline := in.Anchor.Context.Text()
	reject := func(reason Reason, detail string) (Candidate, Rejection, bool) {
		return Candidate{}, Rejection{
			Reason:   reason,
			Filename: in.Filename,
			Page:     in.Page.Number,
			Context:  byline,
			Detail:   detail,
		}, false
	}

	if n := utf8.RuneCountInString(byline); n > g.config.MaxContextChars {
		return reject(ReasonContextTooLong, strconv.Itoa(n)+" chars")
	}

	lower := strings.ToLower(byline)
	if phrase, ok := containsAny(lower, g.config.CoAuthorPhrases); ok {
		return reject(ReasonCoAuthor, phrase)
	}
	if phrase, ok := containsAny(lower, g.config.CreditPhrases); ok {
		return reject(ReasonPhotoCredit, phrase)
	}

	headline, ok := g.headlines.Detect(in.Anchor, in.Words)
	if !ok {
		return reject(ReasonNoHeadline, "")
	}
	if n := headline.WordCount(); n < g.config.MinHeadlineWords {
		return reject(ReasonShortHeadline, strconv.Itoa(n)+" words")
	}

	bounds := in.Page.Bounds()
	body := g.bodies.Extract(in.Anchor, bounds, in.Words)
	if body.WordCount < g.config.MinBodyWords {
		return reject(ReasonShortBody, strconv.Itoa(body.WordCount)+" words")
	}

	images := g.images.Associate(headline.Top(), bounds, in.Page.Images)

	return Candidate{
		Headline:      headline.Text,
		BylineContext: byline,
		Filename:      in.Filename,
		Page:          in.Page.Number,
		WordCount:     body.WordCount,
		ImageCount:    len(images),
		Date:          DateFromFilename(in.Filename),
		Excerpt:       text.Truncate(body.Text, g.config.ExcerptChars),
		FullText:      body.Text,
		Slug:          Slug(headline.Text, g.config.SlugMaxChars),
		Paragraphs:    body.Paragraphs,
		Images:        images,
	}, Rejection{}, true
}

func containsAny(s string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if p != "" && strings.Contains(s, strings.ToLower(p)) {
			return p, true
		}
	}
	return "", false
}
