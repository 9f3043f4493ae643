package scan

import (
	"context"
	"strings"

	"github.com/tsawler/morgue/layout"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/model"
)

// Mention is a page line that contains the author phrase
type Mention struct {
	Filename string
	Page     int

	// Line is the repaired text of the line
	Line string

	// Top is the vertical position of the line
	Top float64
}

// Mentions lists every line in paths whose repaired text contains the author
// phrase, matched case-insensitively. No headline or body analysis is done;
// it shows where the name appears and in what context, which helps when
// tuning the gate thresholds.
func (s *Scanner) Mentions(ctx context.Context, paths []string) ([]Mention, []Failure, error) {
	phrase := strings.ToLower(strings.Join(strings.Fields(s.config.Anchor.Phrase), " "))
	if phrase == "" {
		return nil, nil, nil
	}
	lines := layout.NewLineGrouperWithConfig(layout.LineConfig{Tolerance: s.config.Anchor.ContextTolerance})

	perPage, failures, err := walk(ctx, s, s.log, paths, func(page *model.Page, filename string) []Mention {
		words, _ := page.ValidWords()

		var found []Mention
		for _, line := range lines.Group(words) {
			txt := line.Text()
			if strings.Contains(strings.ToLower(txt), phrase) {
				found = append(found, Mention{
					Filename: filename,
					Page:     page.Number,
					Line:     txt,
					Top:      line.Top(),
				})
			}
		}
		return found
	})
	if err != nil {
		return nil, nil, err
	}

	var mentions []Mention
	for _, m := range perPage {
		mentions = append(mentions, m...)
	}

	s.log.Info("mention report complete",
		logger.Int("documents", len(paths)),
		logger.Int("mentions", len(mentions)),
		logger.Int("failures", len(failures)),
	)
	return mentions, failures, nil
}
