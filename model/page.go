package model

// Image is an embedded image placed on a page
type Image struct {
	// Name is the resource name inside the source document (e.g. "Im1")
	Name string

	// Rect is where the image is drawn, in page coordinates
	Rect Rect

	// PixelWidth and PixelHeight are the intrinsic dimensions of the
	// image data, when the source knows them
	PixelWidth  int
	PixelHeight int

	// Data is the encoded image payload
	Data []byte

	// Format is the payload file type ("jpg", "png", "tif", ...)
	Format string
}

// Top returns the top edge of the placed image
func (i Image) Top() float64 { return i.Rect.Top }

// Page is the immutable geometry of one page: its words and embedded images
type Page struct {
	// Number is the 1-indexed page number
	Number int

	// Width and Height are the page dimensions in page units.
	// Zero means unknown; use Bounds for a usable extent.
	Width  float64
	Height float64

	// Words in source order
	Words []Word

	// Images drawn on the page
	Images []Image
}

// Bounds returns the page rectangle. When the source did not report page
// dimensions, the extent of the valid words and images is used instead.
func (p *Page) Bounds() Rect {
	if p.Width > 0 && p.Height > 0 {
		return Rect{Top: 0, Bottom: p.Height, Left: 0, Right: p.Width}
	}

	var r Rect
	for _, w := range p.Words {
		if !w.IsValid() {
			continue
		}
		if w.Rect.Right > r.Right {
			r.Right = w.Rect.Right
		}
		if w.Rect.Bottom > r.Bottom {
			r.Bottom = w.Rect.Bottom
		}
	}
	for _, img := range p.Images {
		if img.Rect.Right > r.Right {
			r.Right = img.Rect.Right
		}
		if img.Rect.Bottom > r.Bottom {
			r.Bottom = img.Rect.Bottom
		}
	}
	if p.Width > 0 {
		r.Right = p.Width
	}
	if p.Height > 0 {
		r.Bottom = p.Height
	}
	return r
}

// ValidWords returns the words that can take part in geometric analysis and
// the number of malformed words that were dropped. The result is a new slice;
// the page is unchanged.
func (p *Page) ValidWords() ([]Word, int) {
	valid := make([]Word, 0, len(p.Words))
	for _, w := range p.Words {
		if w.IsValid() {
			valid = append(valid, w)
		}
	}
	return valid, len(p.Words) - len(valid)
}
