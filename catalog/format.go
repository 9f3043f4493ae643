package catalog

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/text"
)

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// Slugify lower-cases s, drops everything but letters, digits, whitespace
// and hyphens, and joins the remaining words with hyphens
func Slugify(s string) string {
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "")
	s = slugSpace.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// cpMonths are the Canadian Press abbreviations; March to July are spelled out
var cpMonths = map[time.Month]string{
	time.January:   "Jan.",
	time.February:  "Feb.",
	time.August:    "Aug.",
	time.September: "Sept.",
	time.October:   "Oct.",
	time.November:  "Nov.",
	time.December:  "Dec.",
}

// DisplayDate formats an ISO date in Canadian Press style, e.g.
// "2025-11-06" becomes "Nov. 06, 2025". Anything that is not an ISO date,
// including article.UnknownDate, is returned unchanged.
func DisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	month, ok := cpMonths[t.Month()]
	if !ok {
		month = t.Month().String()
	}
	return fmt.Sprintf("%s %02d, %d", month, t.Day(), t.Year())
}

// SourceURL points at the page of the scanned issue a candidate came from
func SourceURL(c article.Candidate) string {
	return fmt.Sprintf("file://%s#page=%d", c.Filename, c.Page)
}

// Markup renders paragraphs as a sequence of HTML <p> elements with their
// text escaped. With no paragraphs, text is split on blank lines instead.
func Markup(paragraphs []string, fullText string) string {
	if len(paragraphs) == 0 {
		paragraphs = text.Paragraphs(fullText)
	}

	var buf bytes.Buffer
	for _, p := range paragraphs {
		node := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		node.AppendChild(&html.Node{Type: html.TextNode, Data: p})
		// rendering an in-memory node into a buffer cannot fail
		_ = html.Render(&buf, node)
	}
	return buf.String()
}
