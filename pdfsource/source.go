package pdfsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/source"
)

var errClosed = errors.New("document is closed")

// Config holds configuration for PDF word extraction
type Config struct {
	// GlyphWidth is the estimated advance of every glyph as a fraction of
	// the font size. Font metrics are not read (default: 0.5)
	GlyphWidth float64

	// WordGap splits two glyphs into separate words when the gap between
	// them exceeds WordGap × font size (default: 0.25)
	WordGap float64

	// Images enables embedded image extraction (default: true)
	Images bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		GlyphWidth: 0.5,
		WordGap:    0.25,
		Images:     true,
	}
}

// Source opens PDF files through pdfcpu
type Source struct {
	config Config
}

// New creates a PDF source with default configuration
func New() *Source {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a PDF source with custom configuration
func NewWithConfig(config Config) *Source {
	return &Source{config: config}
}

// Open reads and validates the PDF at path
func (s *Source) Open(ctx context.Context, path string) (source.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pctx, err := api.ReadValidateAndOptimize(f, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", path, err)
	}

	// missing dimensions fall back to the content extent (contentHeight)
	dims, err := pctx.PageDims()
	if err != nil {
		dims = nil
	}

	return &document{config: s.config, ctx: pctx, dims: dims}, nil
}

// document is an open PDF. pdfcpu contexts are not safe for concurrent use,
// so page extraction is serialized; geometry analysis of the returned pages
// runs in parallel.
type document struct {
	config Config

	mu   sync.Mutex
	ctx  *pdfmodel.Context
	dims []types.Dim
}

func (d *document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// Page extracts the words and placed images of page n
func (d *document) Page(ctx context.Context, n int) (*model.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx == nil {
		return nil, errClosed
	}
	if err := source.CheckRange(n, d.ctx.PageCount); err != nil {
		return nil, err
	}

	content, err := d.content(n)
	if err != nil {
		return nil, err
	}

	var images map[string]extracted
	if d.config.Images {
		if images, err = d.images(n); err != nil {
			return nil, err
		}
	}

	var width, height float64
	if n-1 < len(d.dims) {
		width, height = d.dims[n-1].Width, d.dims[n-1].Height
	}

	return buildPage(n, width, height, content, images, d.config)
}

func (d *document) content(n int) ([]byte, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to read content of page %d: %w", n, err)
	}
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content of page %d: %w", n, err)
	}
	return data, nil
}

func (d *document) images(n int) (map[string]extracted, error) {
	imgs, err := pdfcpu.ExtractPageImages(d.ctx, n, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract images of page %d: %w", n, err)
	}

	out := make(map[string]extracted, len(imgs))
	for _, img := range imgs {
		var data []byte
		if img.Reader != nil {
			if data, err = io.ReadAll(img); err != nil {
				return nil, fmt.Errorf("failed to read image %s on page %d: %w", img.Name, n, err)
			}
		}
		out[img.Name] = extracted{
			data:   data,
			format: img.FileType,
			width:  img.Width,
			height: img.Height,
		}
	}
	return out, nil
}

func (d *document) Close() error {
	d.mu.Lock()
	d.ctx = nil
	d.mu.Unlock()
	return nil
}

// extracted is an image payload keyed by its resource name
type extracted struct {
	data          []byte
	format        string
	width, height int
}

// buildPage interprets a page content stream into page geometry
func buildPage(n int, width, height float64, content []byte, images map[string]extracted, config Config) (*model.Page, error) {
	ops, err := tokenize(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content of page %d: %w", n, err)
	}

	in := newInterpreter(config)
	in.run(ops)

	if height <= 0 {
		height = contentHeight(in.glyphs, in.placements)
	}

	return &model.Page{
		Number: n,
		Width:  width,
		Height: height,
		Words:  assembleWords(in.glyphs, height, config.WordGap),
		Images: placeImages(in.placements, images, height),
	}, nil
}

// contentHeight stands in for the page height when the PDF does not report
// one. It is the top of the highest glyph or placement in device space plus
// a margin of the largest font size, so flipped tops stay positive and the
// highest row still falls inside a headline zone.
func contentHeight(glyphs []glyph, placements []placement) float64 {
	var top, margin float64
	for _, g := range glyphs {
		top = math.Max(top, g.y+g.size)
		margin = math.Max(margin, g.size)
	}
	for _, p := range placements {
		top = math.Max(top, p.maxY)
	}
	return top + margin
}
