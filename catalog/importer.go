package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/logger"
)

// ImportConfig holds the catalog import rules
type ImportConfig struct {
	// Author is credited in every article byline as "By <Author>"
	Author string

	// MinHeadlineChars rejects headlines shorter than this (default: 10)
	MinHeadlineChars int

	// Mastheads are newspaper names that the headline detector picks up
	// from page headers, matched case-insensitively against the whole
	// headline
	Mastheads []string

	// NoisePhrases reject headlines containing them, matched
	// case-sensitively (default: "PUBLISHED BY")
	NoisePhrases []string

	// URLMarkers reject headlines that look like web addresses
	// (default: "www.", ".com")
	URLMarkers []string

	// Tags are attached to every imported article
	// (default: "journalism", "archive")
	Tags []string
}

// DefaultImportConfig returns the import rules for author
func DefaultImportConfig(author string) ImportConfig {
	return ImportConfig{
		Author:           author,
		MinHeadlineChars: 10,
		Mastheads:        []string{"TERRACE STANDARD", "LAKES DISTRICT NEWS", "TANDARD"},
		NoisePhrases:     []string{"PUBLISHED BY"},
		URLMarkers:       []string{"www.", ".com"},
		Tags:             []string{"journalism", "archive"},
	}
}

// ImageResolver publishes the images of a candidate and returns their URLs
type ImageResolver interface {
	Resolve(ctx context.Context, c article.Candidate, slug string) ([]string, error)
}

// Skip records a candidate that was not imported
type Skip struct {
	Headline string
	Slug     string
	Reason   string
}

// Report is the outcome of an import
type Report struct {
	Imported []Article
	Skipped  []Skip
}

// Importer turns candidates into catalog articles
type Importer struct {
	config ImportConfig
	store  Store
	images ImageResolver
	log    logger.Logger
}

// NewImporter creates an importer writing to store with default rules
func NewImporter(store Store, author string) *Importer {
	return NewImporterWithConfig(store, DefaultImportConfig(author))
}

// NewImporterWithConfig creates an importer with custom rules
func NewImporterWithConfig(store Store, config ImportConfig) *Importer {
	return &Importer{
		config: config,
		store:  store,
		log:    logger.NewNop(),
	}
}

// WithImages sets the resolver used to publish candidate images. Without
// one, articles are imported with no images.
func (im *Importer) WithImages(r ImageResolver) *Importer {
	im.images = r
	return im
}

// WithLogger sets the logger
func (im *Importer) WithLogger(l logger.Logger) *Importer {
	im.log = l
	return im
}

// Check returns why a headline is not fit for the catalog, or "" when it is
func (im *Importer) Check(headline string) string {
	headline = strings.TrimSpace(headline)

	if len([]rune(headline)) < im.config.MinHeadlineChars {
		return "short headline"
	}
	for _, m := range im.config.URLMarkers {
		if strings.Contains(headline, m) {
			return "url-like headline"
		}
	}
	upper := strings.ToUpper(headline)
	for _, m := range im.config.Mastheads {
		if upper == strings.ToUpper(m) {
			return "masthead headline"
		}
	}
	for _, p := range im.config.NoisePhrases {
		if strings.Contains(headline, p) {
			return "noise headline"
		}
	}
	return ""
}

// Slug returns the catalog slug for a candidate: the slugified headline
// followed by its date
func Slug(c article.Candidate) string {
	return Slugify(c.Headline + " " + c.Date)
}

// Import adds the candidates that pass the headline checks and whose slug is
// not yet in the store. Image publishing failures are logged and the
// article is imported without images.
func (im *Importer) Import(ctx context.Context, candidates []article.Candidate) (*Report, error) {
	existing, err := im.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.Slug] = true
	}

	report := &Report{}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		headline := strings.TrimSpace(c.Headline)
		slug := Slug(c)

		if reason := im.Check(headline); reason != "" {
			report.Skipped = append(report.Skipped, Skip{Headline: headline, Slug: slug, Reason: reason})
			im.log.Debug("candidate skipped", logger.String("headline", headline), logger.String("reason", reason))
			continue
		}
		if seen[slug] {
			report.Skipped = append(report.Skipped, Skip{Headline: headline, Slug: slug, Reason: "duplicate slug"})
			im.log.Debug("candidate skipped", logger.String("slug", slug), logger.String("reason", "duplicate slug"))
			continue
		}

		a := im.build(c, headline, slug)
		if im.images != nil {
			urls, err := im.images.Resolve(ctx, c, slug)
			if err != nil {
				im.log.Warn("failed to publish images", logger.String("slug", slug), logger.Error(err))
			}
			a.Images = append(a.Images, urls...)
		}

		report.Imported = append(report.Imported, a)
		seen[slug] = true
	}

	if len(report.Imported) > 0 {
		if err := im.store.Put(ctx, report.Imported...); err != nil {
			return nil, fmt.Errorf("failed to store articles: %w", err)
		}
	}

	im.log.Info("import complete",
		logger.Int("candidates", len(candidates)),
		logger.Int("imported", len(report.Imported)),
		logger.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (im *Importer) build(c article.Candidate, headline, slug string) Article {
	return Article{
		Slug:        slug,
		Title:       headline,
		Date:        c.Date,
		DisplayDate: DisplayDate(c.Date),
		SourceURL:   SourceURL(c),
		Excerpt:     c.Excerpt,
		ContentHTML: Markup(c.Paragraphs, c.FullText),
		Images:      []string{},
		Byline:      "By " + im.config.Author,
		Tags:        append([]string(nil), im.config.Tags...),
	}
}

// Clean removes stored articles whose titles fail the headline checks and
// returns their slugs
func (im *Importer) Clean(ctx context.Context) ([]string, error) {
	articles, err := im.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	var removed []string
	for _, a := range articles {
		if im.Check(a.Title) == "" {
			continue
		}
		if err := im.store.Delete(ctx, a.Slug); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", a.Slug, err)
		}
		removed = append(removed, a.Slug)
	}

	im.log.Info("catalog cleaned", logger.Int("removed", len(removed)))
	return removed, nil
}
