package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/morgue/model"
)

// ErrPageRange is returned when a page number is outside the document
var ErrPageRange = errors.New("page out of range")

// Source opens documents that yield per-page word geometry
type Source interface {
	Open(ctx context.Context, path string) (Document, error)
}

// Document is an open, paged word-stream. Pages are numbered from 1.
// A Document is safe for concurrent calls to Page.
type Document interface {
	// NumPages returns the number of pages in the document
	NumPages() int

	// Page returns the geometry of page number n. It returns ErrPageRange
	// when n is outside 1..NumPages.
	Page(ctx context.Context, n int) (*model.Page, error)

	// Close releases the document
	Close() error
}

// CheckRange validates a 1-indexed page number against a page count
func CheckRange(n, count int) error {
	if n < 1 || n > count {
		return fmt.Errorf("page %d of %d: %w", n, count, ErrPageRange)
	}
	return nil
}
