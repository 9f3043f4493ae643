package article

import (
	"regexp"
	"strings"
	"time"

	"github.com/tsawler/morgue/text"
)

// UnknownDate is the date of a candidate whose filename carries no date
const UnknownDate = "Unknown"

// filenameDate matches MM_DD_YYYY, as in "Terrace Standard 11_06_2025 1.pdf"
var filenameDate = regexp.MustCompile(`(\d{2})_(\d{2})_(\d{4})`)

// DateFromFilename derives an ISO-8601 date from the first MM_DD_YYYY group
// in filename. It returns UnknownDate when there is no such group or the
// group is not a real calendar date.
func DateFromFilename(filename string) string {
	m := filenameDate.FindStringSubmatch(filename)
	if m == nil {
		return UnknownDate
	}

	iso := m[3] + "-" + m[1] + "-" + m[2]
	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return UnknownDate
	}
	return iso
}

// Slug derives an identifier from a headline: lower-cased, whitespace runs
// replaced by single hyphens, truncated to maxChars characters. A
// non-positive maxChars means no limit.
func Slug(headline string, maxChars int) string {
	slug := strings.Join(strings.Fields(strings.ToLower(headline)), "-")
	if maxChars > 0 {
		slug = text.Truncate(slug, maxChars)
	}
	return slug
}
