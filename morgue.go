// Package morgue provides a fluent API for pulling bylined articles out of
// scanned newspaper pages.
//
// Basic usage:
//
//	candidates, err := morgue.Open("Terrace Standard 11_06_2025 1.pdf").
//	    Author("Jake Wray").
//	    Candidates(ctx)
//
// With options:
//
//	result, err := morgue.Open(paths...).
//	    ConfigFile("morgue.yaml").
//	    Workers(8).
//	    Logger(log).
//	    Result(ctx)
//
// For finer control, the scan, article and layout packages are available
// directly.
package morgue

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/config"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/pdfsource"
	"github.com/tsawler/morgue/scan"
	"github.com/tsawler/morgue/source"
)

// Extractor is a configured extraction over a set of documents. Every
// option method returns a new Extractor and leaves the receiver unchanged.
type Extractor struct {
	paths   []string
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// Open returns an Extractor over the documents at paths, read as PDFs
// unless another source is configured.
//
// Example:
//
//	candidates, err := morgue.Open("issue.pdf").Author("Jake Wray").Candidates(ctx)
func Open(paths ...string) *Extractor {
	return &Extractor{
		paths:   append([]string(nil), paths...),
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	candidates := morgue.Must(morgue.Open("issue.pdf").Candidates(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func (e *Extractor) clone() *Extractor {
	return &Extractor{
		paths:   e.paths,
		options: e.options.clone(),
		err:     e.err,
	}
}

// Author sets the byline phrase to search for, e.g. "Jake Wray"
func (e *Extractor) Author(name string) *Extractor {
	newExt := e.clone()
	newExt.options.author = name
	return newExt
}

// Workers bounds how many pages are analyzed at once
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// Config replaces every setting with cfg. Author and Workers still override.
func (e *Extractor) Config(cfg *config.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = cfg.Clone()
	return newExt
}

// ConfigFile loads settings from a YAML file. A load error is returned by
// the terminal operation.
func (e *Extractor) ConfigFile(path string) *Extractor {
	newExt := e.clone()
	cfg, err := config.Load(path)
	if err != nil {
		newExt.err = errors.Join(newExt.err, err)
		return newExt
	}
	newExt.options.config = cfg
	return newExt
}

// Source reads documents through src instead of as PDFs
func (e *Extractor) Source(src source.Source) *Extractor {
	newExt := e.clone()
	newExt.options.source = src
	return newExt
}

// Dumps reads documents as JSON word dumps instead of PDFs
func (e *Extractor) Dumps() *Extractor {
	return e.Source(source.NewDumpSource())
}

// DedupeBy sets the key candidates are deduplicated by. By default the
// configured key is used, which is the headline unless changed.
func (e *Extractor) DedupeBy(key func(article.Candidate) string) *Extractor {
	newExt := e.clone()
	newExt.options.dedupe = key
	return newExt
}

// Logger sets the logger
func (e *Extractor) Logger(l logger.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.log = l
	return newExt
}

// scanner builds a scanner from the resolved options
func (e *Extractor) scanner() (*scan.Scanner, error) {
	if e.err != nil {
		return nil, e.err
	}
	if len(e.paths) == 0 {
		return nil, errors.New("no documents to scan")
	}

	cfg := e.options.resolved()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	src := e.options.source
	if src == nil {
		src = pdfsource.NewWithConfig(cfg.PDF())
	}
	key := e.options.dedupe
	if key == nil {
		key = cfg.DedupeKey()
	}

	return scan.NewWithConfig(src, cfg.Scanner()).
		WithGate(cfg.Gate()).
		WithDedupeKey(key).
		WithLogger(e.options.log), nil
}

// Result runs the extraction and returns candidates along with every
// rejection, page summary and failure.
func (e *Extractor) Result(ctx context.Context) (*scan.Result, error) {
	s, err := e.scanner()
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, e.paths)
}

// Candidates runs the extraction and returns the deduplicated articles.
// Documents and pages that fail are skipped; use Result to inspect them.
func (e *Extractor) Candidates(ctx context.Context) ([]article.Candidate, error) {
	res, err := e.Result(ctx)
	if err != nil {
		return nil, err
	}
	return res.Candidates, nil
}

// Mentions reports every line that contains the author phrase, regardless
// of whether it forms an article.
func (e *Extractor) Mentions(ctx context.Context) ([]scan.Mention, []scan.Failure, error) {
	s, err := e.scanner()
	if err != nil {
		return nil, nil, err
	}
	return s.Mentions(ctx, e.paths)
}
