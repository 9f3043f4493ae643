package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/layout"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/source"
	"github.com/tsawler/morgue/text"
)

// Config holds scanner configuration
type Config struct {
	// Anchor configures byline detection, including the author phrase
	Anchor layout.AnchorConfig

	// Workers bounds how many pages are analyzed at once
	// (default: runtime.NumCPU())
	Workers int

	// Precheck skips pages on which no word contains any part of the author
	// phrase before running the full analysis (default: true)
	Precheck bool
}

// DefaultConfig returns default configuration for the given author phrase
func DefaultConfig(author string) Config {
	return Config{
		Anchor:   layout.DefaultAnchorConfig(author),
		Workers:  runtime.NumCPU(),
		Precheck: true,
	}
}

// Scanner runs the extraction pipeline over documents, analyzing pages
// concurrently and collecting results in document and page order.
type Scanner struct {
	config  Config
	source  source.Source
	anchors *layout.AnchorDetector
	gate    *article.Gate
	key     func(article.Candidate) string
	log     logger.Logger
}

// New creates a scanner for author with default configuration
func New(src source.Source, author string) *Scanner {
	return NewWithConfig(src, DefaultConfig(author))
}

// NewWithConfig creates a scanner with custom configuration
func NewWithConfig(src source.Source, config Config) *Scanner {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Scanner{
		config:  config,
		source:  src,
		anchors: layout.NewAnchorDetectorWithConfig(config.Anchor),
		gate:    article.NewGate(),
		key:     article.HeadlineKey,
		log:     logger.NewNop(),
	}
}

// WithGate replaces the candidate gate
func (s *Scanner) WithGate(g *article.Gate) *Scanner {
	s.gate = g
	return s
}

// WithLogger sets the logger
func (s *Scanner) WithLogger(l logger.Logger) *Scanner {
	s.log = l
	return s
}

// WithDedupeKey sets the key candidates are deduplicated by
// (default: article.HeadlineKey)
func (s *Scanner) WithDedupeKey(key func(article.Candidate) string) *Scanner {
	s.key = key
	return s
}

// Failure is a document or page that could not be processed. The scan
// continues past failures.
type Failure struct {
	Filename string

	// Page is 0 when the document itself could not be opened
	Page int

	Err error
}

func (f Failure) Error() string {
	if f.Page == 0 {
		return fmt.Sprintf("%s: %v", f.Filename, f.Err)
	}
	return fmt.Sprintf("%s page %d: %v", f.Filename, f.Page, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// PageResult summarizes the analysis of one page
type PageResult struct {
	Filename   string
	Page       int
	Anchors    int
	Candidates int
	Rejections int

	// DroppedWords counts words with malformed geometry excluded from analysis
	DroppedWords int

	// Skipped is set when the precheck found no mention of the author
	Skipped bool
}

// Result is the outcome of a scan
type Result struct {
	// RunID correlates the scan's log entries
	RunID string

	// Candidates are the accepted articles after deduplication, in
	// document and page order
	Candidates []article.Candidate

	// Extracted is the number of candidates before deduplication
	Extracted int

	Rejections []article.Rejection
	Pages      []PageResult
	Failures   []Failure
}

// pageOutput is what analyzing one page produces
type pageOutput struct {
	summary    PageResult
	candidates []article.Candidate
	rejections []article.Rejection
}

// Scan runs the pipeline over every document in paths. Unreadable documents
// and failing pages are recorded as failures; Scan returns an error only
// when ctx is canceled.
func (s *Scanner) Scan(ctx context.Context, paths []string) (*Result, error) {
	started := time.Now()
	result := &Result{RunID: uuid.NewString()}
	log := s.log.With(logger.String("run_id", result.RunID))

	outputs, failures, err := walk(ctx, s, log, paths, s.analyze)
	if err != nil {
		return nil, err
	}
	result.Failures = failures

	var all []article.Candidate
	for _, out := range outputs {
		result.Pages = append(result.Pages, out.summary)
		all = append(all, out.candidates...)
		result.Rejections = append(result.Rejections, out.rejections...)
	}
	result.Extracted = len(all)
	result.Candidates = article.DeduplicateBy(all, s.key)

	log.Info("scan complete",
		logger.Int("documents", len(paths)),
		logger.Int("pages", len(result.Pages)),
		logger.Int("extracted", result.Extracted),
		logger.Int("candidates", len(result.Candidates)),
		logger.Int("rejections", len(result.Rejections)),
		logger.Int("failures", len(result.Failures)),
		logger.Duration("elapsed", time.Since(started)),
	)

	return result, nil
}

// ScanPage analyzes a single page. filename is used for the candidate date
// and provenance.
func (s *Scanner) ScanPage(page *model.Page, filename string) ([]article.Candidate, []article.Rejection) {
	out := s.analyze(page, filename)
	return out.candidates, out.rejections
}

func (s *Scanner) analyze(page *model.Page, filename string) pageOutput {
	words, dropped := page.ValidWords()
	out := pageOutput{summary: PageResult{
		Filename:     filename,
		Page:         page.Number,
		DroppedWords: dropped,
	}}

	if s.config.Precheck && !s.mayMention(words) {
		out.summary.Skipped = true
		return out
	}

	anchors := s.anchors.Detect(words)
	out.summary.Anchors = len(anchors)

	for _, a := range anchors {
		c, rej, ok := s.gate.Evaluate(article.Input{
			Page:     page,
			Words:    words,
			Anchor:   a,
			Filename: filename,
		})
		if !ok {
			out.rejections = append(out.rejections, rej)
			s.log.Debug("anchor rejected",
				logger.String("file", rej.Filename),
				logger.Int("page", rej.Page),
				logger.String("reason", rej.Reason.String()),
				logger.String("detail", rej.Detail),
			)
			continue
		}
		out.candidates = append(out.candidates, c)
	}

	out.summary.Candidates = len(out.candidates)
	out.summary.Rejections = len(out.rejections)
	return out
}

// mayMention reports whether any repaired word contains a part of the
// author phrase
func (s *Scanner) mayMention(words []model.Word) bool {
	parts := strings.Fields(s.config.Anchor.Phrase)
	for _, w := range words {
		token := text.RepairToken(w.Text)
		for _, p := range parts {
			if strings.Contains(token, p) {
				return true
			}
		}
	}
	return false
}

// walk opens each document in turn and applies fn to its pages on a bounded
// worker pool. Results come back in document and page order. A panic while
// loading or analyzing a page is recovered into a failure for that page.
func walk[T any](ctx context.Context, s *Scanner, log logger.Logger, paths []string, fn func(*model.Page, string) T) ([]T, []Failure, error) {
	var (
		results  []T
		failures []Failure
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		filename := filepath.Base(path)
		doc, err := s.source.Open(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			f := Failure{Filename: filename, Err: err}
			failures = append(failures, f)
			log.Warn("document skipped", logger.String("file", filename), logger.Error(err))
			continue
		}

		n := doc.NumPages()
		slots := make([]T, n)
		errs := make([]error, n)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.config.Workers)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i], errs[i] = runPage(gctx, doc, i+1, filename, fn)
				return nil
			})
		}
		waitErr := g.Wait()
		if err := doc.Close(); err != nil {
			log.Warn("failed to close document", logger.String("file", filename), logger.Error(err))
		}
		if waitErr != nil {
			return nil, nil, waitErr
		}

		for i := 0; i < n; i++ {
			if errs[i] != nil {
				if ctx.Err() != nil {
					return nil, nil, ctx.Err()
				}
				f := Failure{Filename: filename, Page: i + 1, Err: errs[i]}
				failures = append(failures, f)
				log.Warn("page skipped", logger.String("file", filename), logger.Int("page", i+1), logger.Error(errs[i]))
				continue
			}
			results = append(results, slots[i])
		}
	}

	return results, failures, nil
}

func runPage[T any](ctx context.Context, doc source.Document, n int, filename string, fn func(*model.Page, string) T) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	page, err := doc.Page(ctx, n)
	if err != nil {
		return out, err
	}
	return fn(page, filename), nil
}
