// Package layout provides the geometric detectors of the article extraction
// pipeline.
//
// A newspaper page arrives as a flat stream of positioned words with no
// article boundaries. The detectors in this package infer those boundaries
// from geometry alone, starting from an occurrence of the author's byline:
//
//	anchors := layout.NewAnchorDetector("Jake Wray").Detect(words)
//	for _, a := range anchors {
//	    headline, ok := layout.NewHeadlineDetector().Detect(a, words)
//	    body := layout.NewBodyExtractor().Extract(a, page.Bounds(), words)
//	    images := layout.NewImageAssociator().Associate(headline.Top(), page.Bounds(), page.Images)
//	}
//
// # Detectors
//
//   - [LineGrouper] - groups words whose top offsets are within a tolerance
//   - [AnchorDetector] - finds byline occurrences, merging split name tokens
//   - [HeadlineDetector] - finds the largest type in a zone above an anchor
//   - [BodyExtractor] - crops the page below an anchor and assembles its text
//   - [ImageAssociator] - selects images inside the article zone
//
// # Configuration
//
// Every threshold is a named field of the detector's config struct with a
// Default*Config constructor:
//
//	config := layout.DefaultHeadlineConfig()
//	config.LookBack = 250
//	config.MaxLines = 3
//	detector := layout.NewHeadlineDetectorWithConfig(config)
//
// Detectors never modify the words they are given.
package layout
