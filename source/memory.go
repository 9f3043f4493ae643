package source

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tsawler/morgue/model"
)

// Memory is a Source over pages held in memory, keyed by path
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]model.Page
}

// NewMemory creates an empty in-memory source
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]model.Page)}
}

// Add registers pages under path. Pages are renumbered 1..len(pages).
func (m *Memory) Add(path string, pages ...model.Page) *Memory {
	cp := make([]model.Page, len(pages))
	for i, p := range pages {
		p.Number = i + 1
		cp[i] = p
	}

	m.mu.Lock()
	m.docs[path] = cp
	m.mu.Unlock()
	return m
}

// Open returns the document registered under path
func (m *Memory) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	pages, ok := m.docs[path]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return &pageSlice{pages: pages}, nil
}

// pageSlice is a Document over a fixed slice of pages
type pageSlice struct {
	pages []model.Page
}

func (d *pageSlice) NumPages() int { return len(d.pages) }

func (d *pageSlice) Page(ctx context.Context, n int) (*model.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := CheckRange(n, len(d.pages)); err != nil {
		return nil, err
	}
	p := d.pages[n-1]
	return &p, nil
}

func (d *pageSlice) Close() error { return nil }
