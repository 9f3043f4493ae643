package text

import (
	"strings"
	"testing"
)

func TestIsDoubled(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"BBLLAACCKK", true},
		{"SSAALLEE", true},
		{"ßßüü", true},
		{"BOOK", false},
		{"keeper", false},
		{"aa", false},  // below the length floor
		{"aaa", false}, // odd length
		{"AABBC", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsDoubled(tt.token); got != tt.want {
				t.Errorf("IsDoubled(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestRepairToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"BBLLAACCKK", "BLACK"},
		{"TTEERRRRAACCEE", "TERRACE"},
		{"ÉÉttéé", "Été"},
		{"BOOK", "BOOK"},
		{"aa", "aa"},
		{"aaa", "aaa"},
		{"Council", "Council"},
		// ambiguous: de-doubles to another doubled token
		{"AAAAAAAA", "AAAAAAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := RepairToken(tt.token); got != tt.want {
				t.Errorf("RepairToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

// double renders every character of s twice
func double(s string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteRune(r)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestRepairTokenRecoversDoubledWords(t *testing.T) {
	words := []string{"BLACK", "Friday", "mattresses", "Terrace", "news", "Wray", "council", "Été"}

	for _, w := range words {
		corrupted := double(w)
		if got := RepairToken(corrupted); got != w {
			t.Errorf("RepairToken(%q) = %q, want %q", corrupted, got, w)
		}
	}
}

func TestRepairTokenIdempotent(t *testing.T) {
	tokens := []string{
		"", "a", "aa", "aaaa", "aaaaaaaa", "AAAAAAAAAAAAAAAA", "BBLLAACCKK",
		"BOOK", "bookkeeper", "LLOOOOKK", "xxyyxxyy", "ÉÉÉÉ", "odd", "abcd",
	}

	for _, tok := range tokens {
		once := RepairToken(tok)
		twice := RepairToken(once)
		if once != twice {
			t.Errorf("RepairToken not idempotent for %q: %q then %q", tok, once, twice)
		}
	}
}

func TestRepairTokenIdentityForShortOrOdd(t *testing.T) {
	for _, tok := range []string{"a", "aa", "bb", "aaa", "AABBC", "xxyyz"} {
		if got := RepairToken(tok); got != tok {
			t.Errorf("RepairToken(%q) = %q, want identity", tok, got)
		}
	}
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"mixed tokens", "BBLLAACCKK Friday SSAALLEE", "BLACK Friday SALE"},
		{"keeps line breaks", "FFUURRNNIITTUURREE\nand\n\nMMAATTTTRREESSSSEESS", "FURNITURE\nand\n\nMATTRESSES"},
		{"never crosses tokens", "aa bb", "aa bb"},
		{"untouched prose", "The council met on Tuesday.", "The council met on Tuesday."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repair(tt.in); got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
