package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/source"
)

// Publisher harvests the images of an article and uploads them. Keys are
// "<prefix>/<slug>/<name>".
type Publisher struct {
	uploader Uploader
	prefix   string
	config   HarvestConfig

	// src and dir reopen the scanned issue when a candidate carries no
	// images of its own
	src source.Source
	dir string

	log logger.Logger
}

// NewPublisher creates a publisher uploading through u under prefix
func NewPublisher(u Uploader, prefix string, cfg HarvestConfig) *Publisher {
	return &Publisher{
		uploader: u,
		prefix:   prefix,
		config:   cfg,
		log:      logger.NewNop(),
	}
}

// WithSource lets the publisher reopen a candidate's page from src, with
// candidate filenames resolved against dir, when the candidate was loaded
// without image payloads (for example from a candidates file). All images
// on the page are considered in that case.
func (p *Publisher) WithSource(src source.Source, dir string) *Publisher {
	p.src = src
	p.dir = dir
	return p
}

// WithLogger sets the logger
func (p *Publisher) WithLogger(l logger.Logger) *Publisher {
	p.log = l
	return p
}

// Resolve publishes the images of c and returns their URLs in page order.
// A failed upload does not stop the others; the failures are joined into
// the returned error alongside the URLs that succeeded.
func (p *Publisher) Resolve(ctx context.Context, c article.Candidate, slug string) ([]string, error) {
	images, err := p.images(ctx, c)
	if err != nil {
		return nil, err
	}

	var (
		urls []string
		errs []error
	)
	for _, h := range Harvest(images, slug, p.config) {
		key := path.Join(p.prefix, slug, h.Name)
		u, err := p.uploader.Upload(ctx, key, h.Data, h.ContentType)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p.log.Debug("image published", logger.String("key", key), logger.Int("bytes", len(h.Data)))
		urls = append(urls, u)
	}
	return urls, errors.Join(errs...)
}

func (p *Publisher) images(ctx context.Context, c article.Candidate) ([]model.Image, error) {
	if len(c.Images) > 0 || p.src == nil {
		return c.Images, nil
	}

	doc, err := p.src.Open(ctx, filepath.Join(p.dir, c.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to reopen %s: %w", c.Filename, err)
	}
	defer doc.Close()

	page, err := doc.Page(ctx, c.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s page %d: %w", c.Filename, c.Page, err)
	}
	return page.Images, nil
}
