package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps the catalog as an indented JSON list of articles, newest
// first, in a single file. Every write rewrites the file.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONStore creates a store backed by path. The file is created on the
// first write.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) List(ctx context.Context) ([]Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) Get(ctx context.Context, slug string) (Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles, err := s.load()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, fmt.Errorf("%s: %w", slug, ErrNotFound)
}

func (s *JSONStore) Put(ctx context.Context, articles ...Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(existing))
	for i, a := range existing {
		index[a.Slug] = i
	}
	for _, a := range articles {
		if i, ok := index[a.Slug]; ok {
			existing[i] = a
			continue
		}
		index[a.Slug] = len(existing)
		existing = append(existing, a)
	}

	return s.save(existing)
}

func (s *JSONStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles, err := s.load()
	if err != nil {
		return err
	}
	for i, a := range articles {
		if a.Slug == slug {
			return s.save(append(articles[:i], articles[i+1:]...))
		}
	}
	return fmt.Errorf("%s: %w", slug, ErrNotFound)
}

func (s *JSONStore) load() ([]Article, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", s.path, err)
	}
	sortNewestFirst(articles)
	return articles, nil
}

// save writes through a temporary file so a failed write leaves the old
// catalog in place
func (s *JSONStore) save(articles []Article) error {
	sortNewestFirst(articles)
	if articles == nil {
		articles = []Article{}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
