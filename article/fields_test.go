package article

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Terrace Standard 11_06_2025 1.pdf", "2025-11-06"},
		{"01_31_2024.pdf", "2024-01-31"},
		{"/archive/2023/Standard 12_24_2023 2.pdf", "2023-12-24"},
		{"Terrace Standard.pdf", UnknownDate},
		{"Standard 13_45_2025.pdf", UnknownDate},
		{"Standard 02_30_2024.pdf", UnknownDate},
		{"Standard 1_6_2025.pdf", UnknownDate},
		{"", UnknownDate},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DateFromFilename(tt.filename); got != tt.want {
				t.Errorf("DateFromFilename(%q) = %s, want %s", tt.filename, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		max      int
		want     string
	}{
		{"simple", "Council Approves Budget", 50, "council-approves-budget"},
		{"whitespace runs", "Mill  Reopens\tAfter\nTalks", 50, "mill-reopens-after-talks"},
		{"trimmed", "  Snow Day  ", 50, "snow-day"},
		{"truncated", "Council Approves Budget", 10, "council-ap"},
		{"no limit", "Council Approves Budget", 0, "council-approves-budget"},
		{"empty", "", 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.headline, tt.max); got != tt.want {
				t.Errorf("Slug(%q, %d) = %q, want %q", tt.headline, tt.max, got, tt.want)
			}
		})
	}
}

func TestSlugBounded(t *testing.T) {
	long := strings.Repeat("Éléphant Rampage Downtown ", 10)
	slug := Slug(long, 50)

	if n := utf8.RuneCountInString(slug); n != 50 {
		t.Errorf("Expected 50 characters, got %d", n)
	}
	if !utf8.ValidString(slug) {
		t.Error("Expected valid UTF-8 after truncation")
	}
	if strings.ContainsAny(slug, " \t\n") || slug != strings.ToLower(slug) {
		t.Errorf("Expected lower-case slug without whitespace, got %q", slug)
	}
}
