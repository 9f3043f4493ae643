package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/morgue/article"
)

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "morgue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	e := cfg.Extraction
	assert.Equal(t, "Jake Wray", e.Author)
	assert.Equal(t, 3.0, e.BylineLineTolerance)
	assert.Equal(t, 5.0, e.HeadlineLineTolerance)
	assert.Equal(t, 300.0, e.HeadlineLookback)
	assert.Equal(t, 14.0, e.MinHeadlineSize)
	assert.Equal(t, 0.9, e.HeadlineSizeRatio)
	assert.Equal(t, 0, e.HeadlineMaxLines)
	assert.Equal(t, 3, e.MinHeadlineWords)
	assert.Equal(t, 50, e.MaxBylineContextChars)
	assert.Equal(t, []string{"with files from"}, e.RejectPhrases)
	assert.Equal(t, []string{"photo", "credit"}, e.CreditPhrases)
	assert.Equal(t, 5.0, e.BodyMargin)
	assert.Equal(t, 200, e.MinBodyWords)
	assert.Equal(t, 50.0, e.ImageAllowance)
	assert.Equal(t, 200, e.ExcerptChars)
	assert.Equal(t, 50, e.SlugMaxChars)

	assert.Equal(t, 200, cfg.Media.MinWidth)
	assert.Equal(t, 15000, cfg.Media.MinBytes)
	assert.Equal(t, 5, cfg.Media.MaxImages)
	assert.True(t, cfg.Scan.Precheck)
	assert.GreaterOrEqual(t, cfg.Scan.Workers, 1)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := createTempConfigFile(t, `
extraction:
  author: Jane Doe
  min_body_words: 150
  headline_max_lines: 2
scan:
  workers: 4
  dedupe: headline_date
media:
  s3:
    bucket: archive
    region: ca-central-1
    timeout: 30s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", cfg.Extraction.Author)
	assert.Equal(t, 150, cfg.Extraction.MinBodyWords)
	assert.Equal(t, 2, cfg.Extraction.HeadlineMaxLines)
	assert.Equal(t, 300.0, cfg.Extraction.HeadlineLookback, "omitted fields keep defaults")
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, "archive", cfg.Media.S3.Bucket)
	assert.Equal(t, 30*time.Second, cfg.Media.S3.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Equal(t, "Jane Doe", cfg.Anchor().Phrase)
	assert.Equal(t, "Jane Doe", cfg.Import().Author)
	assert.Equal(t, 4, cfg.Scanner().Workers)

	c := article.Candidate{Headline: "Same", Date: "2024-01-01"}
	assert.Equal(t, article.HeadlineDateKey(c), cfg.DedupeKey()(c))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(createTempConfigFile(t, "invalid: yaml: content: [}"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty author", func(c *Config) { c.Extraction.Author = " " }},
		{"zero tolerance", func(c *Config) { c.Extraction.BylineLineTolerance = 0 }},
		{"ratio above one", func(c *Config) { c.Extraction.HeadlineSizeRatio = 1.2 }},
		{"ratio zero", func(c *Config) { c.Extraction.HeadlineSizeRatio = 0 }},
		{"negative body words", func(c *Config) { c.Extraction.MinBodyWords = -1 }},
		{"no workers", func(c *Config) { c.Scan.Workers = 0 }},
		{"unknown dedupe", func(c *Config) { c.Scan.Dedupe = "slug" }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"negative media floor", func(c *Config) { c.Media.MinBytes = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Extraction.HeadlineLookback = -1
	cfg.Scan.Workers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction.headline_lookback")
	assert.Contains(t, err.Error(), "scan.workers")
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Extraction.MinBodyWords = 0
	assert.NotNil(t, cfg.Gate())
	assert.Equal(t, 0.25, cfg.PDF().WordGap)
	assert.Equal(t, 15000, cfg.Harvest().MinBytes)
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()

	clone.Extraction.Author = "Jane Doe"
	clone.Extraction.RejectPhrases[0] = "changed"
	clone.Catalog.Mastheads[0] = "changed"

	assert.Equal(t, "Jake Wray", cfg.Extraction.Author)
	assert.Equal(t, []string{"with files from"}, cfg.Extraction.RejectPhrases)
	assert.Equal(t, "TERRACE STANDARD", cfg.Catalog.Mastheads[0])
}
