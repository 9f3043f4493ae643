// Package model defines the page geometry that every other package works on.
//
// A [Page] is what a page-geometry source produces for one page of a scanned
// newspaper issue: an ordered set of positioned [Word] values and the
// embedded [Image] values drawn on it. Nothing in the extraction pipeline
// mutates a Page or a Word after it is loaded.
//
// # Coordinates
//
// All coordinates are page units with the origin at the top-left corner and
// Y growing downward, matching the word dumps produced by common PDF
// text-extraction tools:
//
//	w := model.NewWord("Council", 120, 140, 36, 110, 20)
//	w.Top()    // 120
//	w.Size()   // 20
//
// # Geometry
//
//   - [Rect] - rectangle with union, intersection and containment tests
//   - [Point] - 2D point
//   - [Matrix] - affine transformation used when positioning text and images
//
// # Malformed geometry
//
// Words with inverted or non-finite boxes are malformed. [Page.ValidWords]
// filters them once per page so that line grouping and font-size comparisons
// never see them.
package model
