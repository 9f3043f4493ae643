package article

import "github.com/tsawler/morgue/model"

// Candidate is one accepted article extraction for a (page, anchor) pair.
// Candidates are only built by Gate.Evaluate once every rejection rule has
// passed; there is no invalid Candidate.
type Candidate struct {
	Headline      string `json:"headline"`
	BylineContext string `json:"byline_context"`
	Filename      string `json:"filename"`
	Page          int    `json:"page"`
	WordCount     int    `json:"word_count"`
	ImageCount    int    `json:"image_count"`
	Date          string `json:"date"`
	Excerpt       string `json:"excerpt"`
	FullText      string `json:"full_text"`
	Slug          string `json:"slug"`

	// Paragraphs is the body split on vertical gaps; FullText is the same
	// text as one running paragraph
	Paragraphs []string `json:"paragraphs,omitempty"`

	// Images are the embedded images inside the article zone. They carry
	// binary payloads and are not serialized.
	Images []model.Image `json:"-"`
}
