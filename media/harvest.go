package media

import (
	"bytes"
	"fmt"
	"image"
	"mime"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/morgue/model"
)

// HarvestConfig holds the floors that separate photographs from logos,
// rules and scanning artifacts
type HarvestConfig struct {
	// MinWidth and MinHeight are pixel floors (default: 200)
	MinWidth  int
	MinHeight int

	// MinBytes is the payload size floor (default: 15000)
	MinBytes int

	// MaxImages caps the images kept per article; 0 means no cap (default: 5)
	MaxImages int
}

// DefaultHarvestConfig returns the default floors
func DefaultHarvestConfig() HarvestConfig {
	return HarvestConfig{
		MinWidth:  200,
		MinHeight: 200,
		MinBytes:  15000,
		MaxImages: 5,
	}
}

// Harvested is an image selected for publishing
type Harvested struct {
	// Name is the file name, "<slug>-<n>.<ext>", where n is the image's
	// 1-indexed position among the images it was harvested from
	Name        string
	Data        []byte
	Format      string
	Width       int
	Height      int
	ContentType string
}

// Harvest selects the images worth publishing for an article. Images
// without a payload, below the byte floor, or below the pixel floors are
// dropped. Pixel dimensions come from the source when it reports them and
// are otherwise decoded from the payload; images whose dimensions cannot be
// determined are dropped.
func Harvest(images []model.Image, slug string, cfg HarvestConfig) []Harvested {
	var out []Harvested
	for i, img := range images {
		if cfg.MaxImages > 0 && len(out) >= cfg.MaxImages {
			break
		}
		if len(img.Data) == 0 || len(img.Data) < cfg.MinBytes {
			continue
		}

		width, height, format := img.PixelWidth, img.PixelHeight, normalizeFormat(img.Format)
		if width == 0 || height == 0 || format == "" {
			decoded, name, err := image.DecodeConfig(bytes.NewReader(img.Data))
			if err != nil {
				continue
			}
			width, height = decoded.Width, decoded.Height
			if format == "" {
				format = normalizeFormat(name)
			}
		}
		if width < cfg.MinWidth || height < cfg.MinHeight {
			continue
		}
		if format == "" {
			format = "bin"
		}

		out = append(out, Harvested{
			Name:        fmt.Sprintf("%s-%d.%s", slug, i+1, format),
			Data:        img.Data,
			Format:      format,
			Width:       width,
			Height:      height,
			ContentType: contentType(format),
		})
	}
	return out
}

func normalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimPrefix(f, "."))
	switch f {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	}
	return f
}

func contentType(format string) string {
	switch format {
	case "jpg":
		return "image/jpeg"
	case "tif":
		return "image/tiff"
	case "jp2":
		return "image/jp2"
	}
	if t := mime.TypeByExtension("." + format); t != "" {
		return t
	}
	return "application/octet-stream"
}
