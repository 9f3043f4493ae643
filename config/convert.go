package config

import (
	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/catalog"
	"github.com/tsawler/morgue/layout"
	"github.com/tsawler/morgue/media"
	"github.com/tsawler/morgue/pdfsource"
	"github.com/tsawler/morgue/scan"
)

// Anchor returns the byline detection settings
func (c *Config) Anchor() layout.AnchorConfig {
	return layout.AnchorConfig{
		Phrase:           c.Extraction.Author,
		ContextTolerance: c.Extraction.BylineLineTolerance,
	}
}

// Gate builds the candidate gate with its detectors
func (c *Config) Gate() *article.Gate {
	e := c.Extraction
	return article.NewGateWithConfig(
		article.GateConfig{
			MaxContextChars:  e.MaxBylineContextChars,
			CoAuthorPhrases:  e.RejectPhrases,
			CreditPhrases:    e.CreditPhrases,
			MinHeadlineWords: e.MinHeadlineWords,
			MinBodyWords:     e.MinBodyWords,
			ExcerptChars:     e.ExcerptChars,
			SlugMaxChars:     e.SlugMaxChars,
		},
		layout.NewHeadlineDetectorWithConfig(layout.HeadlineConfig{
			LookBack:      e.HeadlineLookback,
			MinSize:       e.MinHeadlineSize,
			SizeRatio:     e.HeadlineSizeRatio,
			LineTolerance: e.HeadlineLineTolerance,
			MaxLines:      e.HeadlineMaxLines,
		}),
		layout.NewBodyExtractorWithConfig(layout.BodyConfig{
			Margin:        e.BodyMargin,
			LineTolerance: e.BodyLineTolerance,
			ParagraphGap:  e.ParagraphGap,
		}),
		layout.NewImageAssociatorWithConfig(layout.ImageConfig{Allowance: e.ImageAllowance}),
	)
}

// Scanner returns the scanner settings
func (c *Config) Scanner() scan.Config {
	return scan.Config{
		Anchor:   c.Anchor(),
		Workers:  c.Scan.Workers,
		Precheck: c.Scan.Precheck,
	}
}

// DedupeKey returns the candidate deduplication key function
func (c *Config) DedupeKey() func(article.Candidate) string {
	if c.Scan.Dedupe == "headline_date" {
		return article.HeadlineDateKey
	}
	return article.HeadlineKey
}

// PDF returns the PDF word-stream settings
func (c *Config) PDF() pdfsource.Config {
	cfg := pdfsource.DefaultConfig()
	cfg.GlyphWidth = c.Extraction.GlyphWidth
	cfg.WordGap = c.Extraction.WordGap
	return cfg
}

// Import returns the catalog import rules
func (c *Config) Import() catalog.ImportConfig {
	return catalog.ImportConfig{
		Author:           c.Extraction.Author,
		MinHeadlineChars: c.Catalog.MinHeadlineChars,
		Mastheads:        c.Catalog.Mastheads,
		NoisePhrases:     c.Catalog.NoisePhrases,
		URLMarkers:       c.Catalog.URLMarkers,
		Tags:             c.Catalog.Tags,
	}
}

// Harvest returns the image selection floors
func (c *Config) Harvest() media.HarvestConfig {
	return media.HarvestConfig{
		MinWidth:  c.Media.MinWidth,
		MinHeight: c.Media.MinHeight,
		MinBytes:  c.Media.MinBytes,
		MaxImages: c.Media.MaxImages,
	}
}
