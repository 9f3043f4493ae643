package pdfsource

import (
	"math"
	"strings"

	"github.com/tsawler/morgue/model"
)

// assembleWords joins glyphs into words in stream order. A word ends at a
// space glyph, at a baseline change, or where the horizontal gap to the next
// glyph exceeds wordGap × size. Coordinates are flipped so that the origin
// is the top-left of a page of the given height; a word's top is its
// baseline minus its size.
func assembleWords(glyphs []glyph, pageHeight, wordGap float64) []model.Word {
	var words []model.Word

	var (
		sb       strings.Builder
		x0, x1   float64
		baseline float64
		size     float64
		open     bool
	)

	flush := func() {
		if open && sb.Len() > 0 {
			bottom := pageHeight - baseline
			words = append(words, model.NewWord(sb.String(), bottom-size, bottom, x0, x1, size))
		}
		sb.Reset()
		open = false
	}

	for _, g := range glyphs {
		if g.space {
			flush()
			continue
		}

		if open {
			tol := math.Max(size, g.size)
			gap := g.x0 - x1
			sameLine := math.Abs(g.y-baseline) <= tol*0.3
			if !sameLine || gap > wordGap*tol || gap < -tol {
				flush()
			}
		}

		if !open {
			x0, x1 = g.x0, g.x1
			baseline = g.y
			size = g.size
			open = true
		} else {
			x0 = math.Min(x0, g.x0)
			x1 = math.Max(x1, g.x1)
			size = math.Max(size, g.size)
		}
		sb.WriteRune(g.r)
	}
	flush()

	return words
}

// placeImages positions extracted images by the Do placements that drew
// them. An image drawn twice yields two placed images; placements of
// XObjects that are not extracted images (forms) are dropped.
func placeImages(placements []placement, images map[string]extracted, pageHeight float64) []model.Image {
	var placed []model.Image
	for _, p := range placements {
		img, ok := images[p.name]
		if !ok {
			continue
		}
		placed = append(placed, model.Image{
			Name:        p.name,
			Rect:        model.NewRect(pageHeight-p.maxY, pageHeight-p.minY, p.minX, p.maxX),
			PixelWidth:  img.width,
			PixelHeight: img.height,
			Data:        img.data,
			Format:      img.format,
		})
	}
	return placed
}
