package layout

import "github.com/tsawler/morgue/model"

// ImageConfig holds configuration for image association
type ImageConfig struct {
	// Allowance extends the article zone upward past the headline top, so
	// that a photo set slightly above the headline still belongs to the
	// article (default: 50)
	Allowance float64
}

// DefaultImageConfig returns sensible default configuration
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		Allowance: 50.0,
	}
}

// ImageAssociator selects the embedded images that belong to an article zone
type ImageAssociator struct {
	config ImageConfig
}

// NewImageAssociator creates an image associator with default configuration
func NewImageAssociator() *ImageAssociator {
	return &ImageAssociator{config: DefaultImageConfig()}
}

// NewImageAssociatorWithConfig creates an image associator with custom configuration
func NewImageAssociatorWithConfig(config ImageConfig) *ImageAssociator {
	return &ImageAssociator{config: config}
}

// Zone returns the article zone for a headline starting at headlineTop:
// from Allowance above the headline to the bottom of the page.
func (a *ImageAssociator) Zone(headlineTop float64, bounds model.Rect) model.Rect {
	return model.Rect{
		Top:    headlineTop - a.config.Allowance,
		Bottom: bounds.Bottom,
		Left:   bounds.Left,
		Right:  bounds.Right,
	}
}

// Associate returns the images whose top edge falls inside the article zone.
// No size filter is applied here; see the media package for harvesting with
// minimum dimensions.
func (a *ImageAssociator) Associate(headlineTop float64, bounds model.Rect, images []model.Image) []model.Image {
	zone := a.Zone(headlineTop, bounds)

	var selected []model.Image
	for _, img := range images {
		if img.Top() > zone.Top && img.Top() <= zone.Bottom {
			selected = append(selected, img)
		}
	}
	return selected
}
