// Package catalog publishes article candidates as catalog records.
//
// An [Importer] applies a last round of headline checks that the layout
// heuristics cannot make (masthead names, web addresses, printer's notices),
// assigns each article a slug made of its headline and date, renders the
// body as HTML paragraphs, and writes the result to a [Store]. Slugs already
// in the store are skipped, so importing the same scan twice is harmless.
//
// Two stores are provided: [JSONStore], a single JSON file suitable for a
// static site, and [SQLiteStore].
package catalog
