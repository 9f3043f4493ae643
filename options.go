package morgue

import (
	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/config"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/source"
)

// ExtractOptions holds configuration for an extraction run.
type ExtractOptions struct {
	// Settings; nil means config.Default()
	config *config.Config

	// Overrides applied on top of config
	author  string
	workers int
	dedupe  func(article.Candidate) string

	// Collaborators; a nil source means PDFs read with the configured
	// word-assembly settings
	source source.Source
	log    logger.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		log: logger.NewNop(),
	}
}

// clone creates a copy of ExtractOptions. The configuration is copied so
// overrides never leak between extractors.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.config != nil {
		newOpts.config = o.config.Clone()
	}
	return newOpts
}

// resolved returns the effective configuration with overrides applied
func (o ExtractOptions) resolved() *config.Config {
	cfg := config.Default()
	if o.config != nil {
		cfg = o.config.Clone()
	}
	if o.author != "" {
		cfg.Extraction.Author = o.author
	}
	if o.workers > 0 {
		cfg.Scan.Workers = o.workers
	}
	return cfg
}
