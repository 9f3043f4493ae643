package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/morgue/model"
)

// Dump is the JSON page-geometry format read by DumpSource:
//
//	{"pages": [{"width": 612, "height": 792,
//	            "words":  [{"text": "By", "top": 90, "bottom": 98, "x0": 40, "x1": 48, "size": 8}],
//	            "images": [{"name": "Im1", "top": 300, "bottom": 450, "x0": 40, "x1": 240,
//	                        "width": 800, "height": 600, "format": "jpg"}]}]}
//
// Coordinates have their origin at the top-left of the page. A word without
// a size uses its box height.
type Dump struct {
	Pages []DumpPage `json:"pages"`
}

// DumpPage is one page of a Dump
type DumpPage struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Words  []DumpWord  `json:"words"`
	Images []DumpImage `json:"images,omitempty"`
}

// DumpWord is one positioned word
type DumpWord struct {
	Text   string  `json:"text"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Size   float64 `json:"size,omitempty"`
}

// DumpImage is one placed image. The payload is not part of the dump.
type DumpImage struct {
	Name   string  `json:"name"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Format string  `json:"format,omitempty"`
}

// DumpSource opens JSON page-geometry dumps from disk
type DumpSource struct{}

// NewDumpSource creates a dump source
func NewDumpSource() *DumpSource {
	return &DumpSource{}
}

// Open reads and decodes the dump at path
func (s *DumpSource) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	defer f.Close()

	pages, err := ReadDump(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump %s: %w", path, err)
	}
	return &pageSlice{pages: pages}, nil
}

// ReadDump decodes a dump into pages numbered from 1
func ReadDump(r io.Reader) ([]model.Page, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode dump: %w", err)
	}

	pages := make([]model.Page, len(d.Pages))
	for i, dp := range d.Pages {
		p := model.Page{
			Number: i + 1,
			Width:  dp.Width,
			Height: dp.Height,
			Words:  make([]model.Word, 0, len(dp.Words)),
		}
		for _, w := range dp.Words {
			p.Words = append(p.Words, model.NewWord(w.Text, w.Top, w.Bottom, w.X0, w.X1, w.Size))
		}
		for _, img := range dp.Images {
			p.Images = append(p.Images, model.Image{
				Name:        img.Name,
				Rect:        model.NewRect(img.Top, img.Bottom, img.X0, img.X1),
				PixelWidth:  img.Width,
				PixelHeight: img.Height,
				Format:      img.Format,
			})
		}
		pages[i] = p
	}

	return pages, nil
}

// WriteDump encodes pages in the dump format. Image payloads are omitted.
func WriteDump(w io.Writer, pages []model.Page) error {
	d := Dump{Pages: make([]DumpPage, 0, len(pages))}
	for _, p := range pages {
		dp := DumpPage{Width: p.Width, Height: p.Height, Words: make([]DumpWord, 0, len(p.Words))}
		for _, word := range p.Words {
			dp.Words = append(dp.Words, DumpWord{
				Text:   word.Text,
				Top:    word.Top(),
				Bottom: word.Bottom(),
				X0:     word.Left(),
				X1:     word.Right(),
				Size:   word.FontSize,
			})
		}
		for _, img := range p.Images {
			dp.Images = append(dp.Images, DumpImage{
				Name:   img.Name,
				Top:    img.Rect.Top,
				Bottom: img.Rect.Bottom,
				X0:     img.Rect.Left,
				X1:     img.Rect.Right,
				Width:  img.PixelWidth,
				Height: img.PixelHeight,
				Format: img.Format,
			})
		}
		d.Pages = append(d.Pages, dp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	return nil
}
