package morgue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/config"
	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/source"
)

const issue = "Terrace Standard 11_06_2025 1.pdf"

// row lays out words left to right, half a size per character
func row(sentence string, top, size float64) []model.Word {
	var words []model.Word
	x := 40.0
	for _, s := range strings.Fields(sentence) {
		width := float64(len([]rune(s))) * size * 0.5
		words = append(words, model.NewWord(s, top, top+size, x, x+width, size))
		x += width + size*0.3
	}
	return words
}

func body(n int, top float64) []model.Word {
	var words []model.Word
	var line []string
	for i := 0; i < n; i++ {
		line = append(line, fmt.Sprintf("word%d", i))
		if len(line) == 10 || i == n-1 {
			words = append(words, row(strings.Join(line, " "), top, 10)...)
			top += 12
			line = nil
		}
	}
	return words
}

// budgetPage is a page with a 20pt headline, a byline, n body words and a
// 400x300 photo inside the article zone
func budgetPage(n int) model.Page {
	var words []model.Word
	words = append(words, row("Council Approves New Budget Plan", 380, 20)...)
	words = append(words, row("By Jake Wray", 420, 8)...)
	words = append(words, body(n, 440)...)

	return model.Page{
		Width:  600,
		Height: 1000,
		Words:  words,
		Images: []model.Image{{
			Name:        "Im1",
			Rect:        model.Rect{Top: 500, Bottom: 800, Left: 100, Right: 500},
			PixelWidth:  400,
			PixelHeight: 300,
		}},
	}
}

func TestScenarioA_PhotoLineRejected(t *testing.T) {
	line := "Photo: Jake Wray " + strings.Repeat("caption ", 47)
	page := model.Page{Width: 600, Height: 1000, Words: append(row(line, 420, 8), body(300, 440)...)}
	src := source.NewMemory().Add(issue, page)

	res, err := Open(issue).Source(src).Result(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Candidates)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, article.ReasonContextTooLong, res.Rejections[0].Reason)
}

func TestScenarioB_OneCandidate(t *testing.T) {
	src := source.NewMemory().Add(issue, budgetPage(350))

	candidates, err := Open(issue).Source(src).Candidates(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "Council Approves New Budget Plan", c.Headline)
	assert.Equal(t, 350, c.WordCount)
	assert.Equal(t, 1, c.ImageCount)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, issue, c.Filename)
}

func TestScenarioC_ShortBody(t *testing.T) {
	src := source.NewMemory().Add(issue, budgetPage(120))

	res, err := Open(issue).Source(src).Result(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Candidates)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, article.ReasonShortBody, res.Rejections[0].Reason)
}

func TestScenarioD_DateFromFilename(t *testing.T) {
	src := source.NewMemory().Add(issue, budgetPage(250))

	candidates, err := Open(issue).Source(src).Candidates(context.Background())
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "2025-11-06", candidates[0].Date)
}

func TestDedupeAcrossDocuments(t *testing.T) {
	src := source.NewMemory().
		Add("a 01_02_2024.pdf", budgetPage(250)).
		Add("b 03_04_2024.pdf", budgetPage(300))
	paths := []string{"a 01_02_2024.pdf", "b 03_04_2024.pdf"}

	candidates, err := Open(paths...).Source(src).Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "b 03_04_2024.pdf", candidates[0].Filename, "last write wins")

	candidates, err = Open(paths...).Source(src).DedupeBy(article.HeadlineDateKey).Candidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestAuthorOverride(t *testing.T) {
	src := source.NewMemory().Add(issue, budgetPage(350))

	candidates, err := Open(issue).Source(src).Author("Someone Else").Candidates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestOptionsDoNotLeak(t *testing.T) {
	base := Open(issue)
	_ = base.Author("Someone Else").Workers(2)

	assert.Equal(t, "Jake Wray", base.options.resolved().Extraction.Author)

	cfg := config.Default()
	cfg.Extraction.MinBodyWords = 100
	strict := base.Config(cfg)
	cfg.Extraction.MinBodyWords = 999
	cfg.Extraction.RejectPhrases[0] = "changed"
	cfg.Catalog.Tags = append(cfg.Catalog.Tags[:0], "changed")
	assert.Equal(t, 100, strict.options.resolved().Extraction.MinBodyWords)
	assert.Equal(t, []string{"with files from"}, strict.options.resolved().Extraction.RejectPhrases)
	assert.Equal(t, []string{"journalism", "archive"}, strict.options.resolved().Catalog.Tags)

	derived := strict.Author("Someone Else")
	derived.options.config.Extraction.CreditPhrases[0] = "changed"
	assert.Equal(t, []string{"photo", "credit"}, strict.options.resolved().Extraction.CreditPhrases)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morgue.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extraction:\n  min_body_words: 100\n"), 0o644))

	src := source.NewMemory().Add(issue, budgetPage(120))
	candidates, err := Open(issue).ConfigFile(path).Source(src).Candidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, candidates, 1)

	_, err = Open(issue).ConfigFile(filepath.Join(t.TempDir(), "missing.yaml")).Candidates(context.Background())
	assert.Error(t, err)
}

func TestDumps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Terrace Standard 11_06_2025 1.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, source.WriteDump(f, []model.Page{budgetPage(350)}))
	require.NoError(t, f.Close())

	candidates, err := Open(path).Dumps().Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "2025-11-06", candidates[0].Date)
}

func TestMentions(t *testing.T) {
	src := source.NewMemory().Add(issue, budgetPage(120))

	mentions, failures, err := Open(issue).Source(src).Mentions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, mentions, 1)
	assert.Equal(t, "By Jake Wray", mentions[0].Line)
}

func TestNoDocuments(t *testing.T) {
	_, err := Open().Candidates(context.Background())
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, assert.AnError) })
}
