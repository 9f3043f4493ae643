package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/catalog"
	"github.com/tsawler/morgue/layout"
	"github.com/tsawler/morgue/logger"
	"github.com/tsawler/morgue/media"
	"github.com/tsawler/morgue/pdfsource"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete morgue configuration
type Config struct {
	Extraction Extraction    `yaml:"extraction"`
	Scan       Scan          `yaml:"scan"`
	Catalog    Catalog       `yaml:"catalog"`
	Media      Media         `yaml:"media"`
	Log        logger.Config `yaml:"log"`
}

// Extraction holds the layout heuristics
type Extraction struct {
	Author                string   `yaml:"author"`
	BylineLineTolerance   float64  `yaml:"byline_line_tolerance"`
	HeadlineLineTolerance float64  `yaml:"headline_line_tolerance"`
	HeadlineLookback      float64  `yaml:"headline_lookback"`
	MinHeadlineSize       float64  `yaml:"min_headline_size"`
	HeadlineSizeRatio     float64  `yaml:"headline_size_ratio"`
	HeadlineMaxLines      int      `yaml:"headline_max_lines"`
	MinHeadlineWords      int      `yaml:"min_headline_words"`
	MaxBylineContextChars int      `yaml:"max_byline_context_chars"`
	RejectPhrases         []string `yaml:"reject_phrases"`
	CreditPhrases         []string `yaml:"credit_phrases"`
	BodyMargin            float64  `yaml:"body_margin"`
	BodyLineTolerance     float64  `yaml:"body_line_tolerance"`
	ParagraphGap          float64  `yaml:"paragraph_gap"`
	MinBodyWords          int      `yaml:"min_body_words"`
	ImageAllowance        float64  `yaml:"image_allowance"`
	ExcerptChars          int      `yaml:"excerpt_chars"`
	SlugMaxChars          int      `yaml:"slug_max_chars"`

	// GlyphWidth and WordGap tune PDF word assembly, as fractions of the
	// font size
	GlyphWidth float64 `yaml:"glyph_width"`
	WordGap    float64 `yaml:"word_gap"`
}

// Scan holds the scanner settings
type Scan struct {
	Workers  int  `yaml:"workers"`
	Precheck bool `yaml:"precheck"`

	// Dedupe selects the deduplication key: "headline" or "headline_date"
	Dedupe string `yaml:"dedupe"`
}

// Catalog holds the import rules
type Catalog struct {
	MinHeadlineChars int      `yaml:"min_headline_chars"`
	Mastheads        []string `yaml:"mastheads"`
	NoisePhrases     []string `yaml:"noise_phrases"`
	URLMarkers       []string `yaml:"url_markers"`
	Tags             []string `yaml:"tags"`
}

// Media holds image harvesting and upload settings
type Media struct {
	MinWidth  int            `yaml:"min_width"`
	MinHeight int            `yaml:"min_height"`
	MinBytes  int            `yaml:"min_bytes"`
	MaxImages int            `yaml:"max_images"`
	Prefix    string         `yaml:"prefix"`
	S3        media.S3Config `yaml:"s3"`
}

// Default returns the configuration every heuristic was tuned with
func Default() *Config {
	anchor := layout.DefaultAnchorConfig("Jake Wray")
	headline := layout.DefaultHeadlineConfig()
	body := layout.DefaultBodyConfig()
	gate := article.DefaultGateConfig()
	imports := catalog.DefaultImportConfig(anchor.Phrase)
	harvest := media.DefaultHarvestConfig()
	pdf := pdfsource.DefaultConfig()

	return &Config{
		Extraction: Extraction{
			Author:                anchor.Phrase,
			BylineLineTolerance:   anchor.ContextTolerance,
			HeadlineLineTolerance: headline.LineTolerance,
			HeadlineLookback:      headline.LookBack,
			MinHeadlineSize:       headline.MinSize,
			HeadlineSizeRatio:     headline.SizeRatio,
			HeadlineMaxLines:      headline.MaxLines,
			MinHeadlineWords:      gate.MinHeadlineWords,
			MaxBylineContextChars: gate.MaxContextChars,
			RejectPhrases:         gate.CoAuthorPhrases,
			CreditPhrases:         gate.CreditPhrases,
			BodyMargin:            body.Margin,
			BodyLineTolerance:     body.LineTolerance,
			ParagraphGap:          body.ParagraphGap,
			MinBodyWords:          gate.MinBodyWords,
			ImageAllowance:        layout.DefaultImageConfig().Allowance,
			ExcerptChars:          gate.ExcerptChars,
			SlugMaxChars:          gate.SlugMaxChars,
			GlyphWidth:            pdf.GlyphWidth,
			WordGap:               pdf.WordGap,
		},
		Scan: Scan{
			Workers:  runtime.NumCPU(),
			Precheck: true,
			Dedupe:   "headline",
		},
		Catalog: Catalog{
			MinHeadlineChars: imports.MinHeadlineChars,
			Mastheads:        imports.Mastheads,
			NoisePhrases:     imports.NoisePhrases,
			URLMarkers:       imports.URLMarkers,
			Tags:             imports.Tags,
		},
		Media: Media{
			MinWidth:  harvest.MinWidth,
			MinHeight: harvest.MinHeight,
			MinBytes:  harvest.MinBytes,
			MaxImages: harvest.MaxImages,
			Prefix:    "media/journalism",
		},
		Log: logger.DefaultConfig(),
	}
}

// Clone returns a deep copy of c. Phrase and tag lists are copied so the
// clone can be changed without touching c.
func (c *Config) Clone() *Config {
	out := *c
	out.Extraction.RejectPhrases = slices.Clone(c.Extraction.RejectPhrases)
	out.Extraction.CreditPhrases = slices.Clone(c.Extraction.CreditPhrases)
	out.Catalog.Mastheads = slices.Clone(c.Catalog.Mastheads)
	out.Catalog.NoisePhrases = slices.Clone(c.Catalog.NoisePhrases)
	out.Catalog.URLMarkers = slices.Clone(c.Catalog.URLMarkers)
	out.Catalog.Tags = slices.Clone(c.Catalog.Tags)
	return &out
}

// Load reads a YAML file over the defaults. Fields the file omits keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every out-of-range setting at once
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	e := c.Extraction
	if strings.TrimSpace(e.Author) == "" {
		invalid("extraction.author is required")
	}
	positive := map[string]float64{
		"extraction.byline_line_tolerance":   e.BylineLineTolerance,
		"extraction.headline_line_tolerance": e.HeadlineLineTolerance,
		"extraction.body_line_tolerance":     e.BodyLineTolerance,
		"extraction.headline_lookback":       e.HeadlineLookback,
		"extraction.min_headline_size":       e.MinHeadlineSize,
		"extraction.paragraph_gap":           e.ParagraphGap,
		"extraction.glyph_width":             e.GlyphWidth,
		"extraction.word_gap":                e.WordGap,
	}
	for _, name := range slices.Sorted(maps.Keys(positive)) {
		if positive[name] <= 0 {
			invalid("%s must be > 0", name)
		}
	}
	if e.HeadlineSizeRatio <= 0 || e.HeadlineSizeRatio > 1 {
		invalid("extraction.headline_size_ratio must be in (0, 1]")
	}

	nonNegative := map[string]float64{
		"extraction.headline_max_lines":       float64(e.HeadlineMaxLines),
		"extraction.min_headline_words":       float64(e.MinHeadlineWords),
		"extraction.max_byline_context_chars": float64(e.MaxBylineContextChars),
		"extraction.body_margin":              e.BodyMargin,
		"extraction.min_body_words":           float64(e.MinBodyWords),
		"extraction.image_allowance":          e.ImageAllowance,
		"extraction.excerpt_chars":            float64(e.ExcerptChars),
		"extraction.slug_max_chars":           float64(e.SlugMaxChars),
		"catalog.min_headline_chars":          float64(c.Catalog.MinHeadlineChars),
		"media.min_width":                     float64(c.Media.MinWidth),
		"media.min_height":                    float64(c.Media.MinHeight),
		"media.min_bytes":                     float64(c.Media.MinBytes),
		"media.max_images":                    float64(c.Media.MaxImages),
	}
	for _, name := range slices.Sorted(maps.Keys(nonNegative)) {
		if nonNegative[name] < 0 {
			invalid("%s must be >= 0", name)
		}
	}

	if c.Scan.Workers < 1 {
		invalid("scan.workers must be >= 1")
	}
	switch c.Scan.Dedupe {
	case "headline", "headline_date":
	default:
		invalid("unsupported scan.dedupe %q (use headline or headline_date)", c.Scan.Dedupe)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		invalid("unsupported log.level %q", c.Log.Level)
	}

	return errors.Join(errs...)
}
