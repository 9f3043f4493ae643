package catalog

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound is returned when no article has the requested slug
var ErrNotFound = errors.New("article not found")

// Article is a published catalog record
type Article struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	DisplayDate string   `json:"display_date"`
	SourceURL   string   `json:"source_url"`
	Excerpt     string   `json:"excerpt"`
	ContentHTML string   `json:"content_html"`
	Images      []string `json:"images"`
	Byline      string   `json:"byline"`
	Tags        []string `json:"tags"`
}

// Store persists catalog articles keyed by slug
type Store interface {
	// List returns every article, newest first
	List(ctx context.Context) ([]Article, error)

	// Get returns the article with slug, or ErrNotFound
	Get(ctx context.Context, slug string) (Article, error)

	// Put inserts or replaces articles by slug
	Put(ctx context.Context, articles ...Article) error

	// Delete removes the article with slug, or returns ErrNotFound
	Delete(ctx context.Context, slug string) error
}

// sortNewestFirst orders articles by ISO date descending. Undated articles
// go last; ties keep their relative order.
func sortNewestFirst(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		di, dj := sortableDate(articles[i].Date), sortableDate(articles[j].Date)
		return di > dj
	})
}

func sortableDate(date string) string {
	if len(date) != len("2006-01-02") || date[4] != '-' || date[7] != '-' {
		return ""
	}
	return date
}
