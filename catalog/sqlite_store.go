package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	slug         TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	date         TEXT NOT NULL,
	display_date TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	excerpt      TEXT NOT NULL,
	content_html TEXT NOT NULL,
	images       TEXT NOT NULL,
	byline       TEXT NOT NULL,
	tags         TEXT NOT NULL
)`

const columns = `slug, title, date, display_date, source_url, excerpt, content_html, images, byline, tags`

// SQLiteStore keeps the catalog in a SQLite database. Image URLs and tags
// are stored as JSON arrays.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the catalog database at path
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List(ctx context.Context) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM articles ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	sortNewestFirst(articles)
	return articles, nil
}

func (s *SQLiteStore) Get(ctx context.Context, slug string) (Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM articles WHERE slug = ?`, slug)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, fmt.Errorf("%s: %w", slug, ErrNotFound)
	}
	return a, err
}

func (s *SQLiteStore) Put(ctx context.Context, articles ...Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO articles (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		images, err := json.Marshal(nonNil(a.Images))
		if err != nil {
			return fmt.Errorf("failed to encode images of %s: %w", a.Slug, err)
		}
		tags, err := json.Marshal(nonNil(a.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode tags of %s: %w", a.Slug, err)
		}
		if _, err := stmt.ExecContext(ctx, a.Slug, a.Title, a.Date, a.DisplayDate, a.SourceURL,
			a.Excerpt, a.ContentHTML, string(images), a.Byline, string(tags)); err != nil {
			return fmt.Errorf("failed to store %s: %w", a.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit articles: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", slug, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", slug, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", slug, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (Article, error) {
	var (
		a            Article
		images, tags string
	)
	if err := row.Scan(&a.Slug, &a.Title, &a.Date, &a.DisplayDate, &a.SourceURL,
		&a.Excerpt, &a.ContentHTML, &images, &a.Byline, &tags); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Article{}, err
		}
		return Article{}, fmt.Errorf("failed to read article: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &a.Images); err != nil {
		return Article{}, fmt.Errorf("failed to decode images of %s: %w", a.Slug, err)
	}
	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return Article{}, fmt.Errorf("failed to decode tags of %s: %w", a.Slug, err)
	}
	return a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
