package layout

import (
	"testing"

	"github.com/tsawler/morgue/model"
)

// anchorAt builds an anchor for "Jake Wray" at the given top
func anchorAt(top float64) Anchor {
	words := makeRow("By Jake Wray", 40, top, 8)
	anchors := NewAnchorDetector("Jake Wray").Detect(words)
	return anchors[0]
}

func TestHeadlineDetector_SingleLine(t *testing.T) {
	var words []model.Word
	words = append(words, makeRow("Council Approves New Budget Plan", 40, 420, 20)...)
	words = append(words, makeRow("By Jake Wray", 40, 460, 8)...)

	headline, ok := NewHeadlineDetector().Detect(anchorAt(460), words)
	if !ok {
		t.Fatal("Expected a headline")
	}
	if headline.Text != "Council Approves New Budget Plan" {
		t.Errorf("Expected headline text preserved, got '%s'", headline.Text)
	}
	if headline.Size != 20 {
		t.Errorf("Expected size 20, got %v", headline.Size)
	}
	if headline.Top() != 420 {
		t.Errorf("Expected top 420, got %v", headline.Top())
	}
	if headline.WordCount() != 5 {
		t.Errorf("Expected 5 words, got %d", headline.WordCount())
	}
}

func TestHeadlineDetector_MultiLineReadingOrder(t *testing.T) {
	var words []model.Word
	// second row listed first and with slight baseline jitter
	words = append(words, makeRow("Plan Tonight", 40, 426.5, 24)...)
	words = append(words, makeRow("Council Weighs Budget", 40, 398, 24)...)
	words = append(words, makeRow("a smaller deck line", 40, 455, 12)...)

	headline, ok := NewHeadlineDetector().Detect(anchorAt(480), words)
	if !ok {
		t.Fatal("Expected a headline")
	}
	if headline.Text != "Council Weighs Budget Plan Tonight" {
		t.Errorf("Unexpected headline '%s'", headline.Text)
	}
	if len(headline.Lines) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(headline.Lines))
	}
}

func TestHeadlineDetector_SameRowJitterOrderedByLeft(t *testing.T) {
	words := []model.Word{
		makeWord("Budget", 200, 400, 20),
		makeWord("Council", 40, 401.5, 20),
		makeWord("Passes", 330, 399.2, 20),
	}

	headline, ok := NewHeadlineDetector().Detect(anchorAt(450), words)
	if !ok {
		t.Fatal("Expected a headline")
	}
	if headline.Text != "Council Budget Passes" {
		t.Errorf("Expected left-to-right order, got '%s'", headline.Text)
	}
}

func TestHeadlineDetector_NoLargeText(t *testing.T) {
	words := makeRow("ordinary classified ad text", 40, 420, 9)

	if _, ok := NewHeadlineDetector().Detect(anchorAt(460), words); ok {
		t.Error("Expected no headline below the minimum size")
	}
}

func TestHeadlineDetector_EmptyZone(t *testing.T) {
	words := makeRow("Big Headline Below Anchor", 40, 500, 24)

	if _, ok := NewHeadlineDetector().Detect(anchorAt(460), words); ok {
		t.Error("Expected no headline when nothing is above the anchor")
	}
}

func TestHeadlineDetector_LookBackLimit(t *testing.T) {
	words := makeRow("Unrelated Story Far Above", 40, 100, 30)

	if _, ok := NewHeadlineDetector().Detect(anchorAt(460), words); ok {
		t.Error("Expected headline beyond look-back distance to be ignored")
	}

	config := DefaultHeadlineConfig()
	config.LookBack = 400
	if _, ok := NewHeadlineDetectorWithConfig(config).Detect(anchorAt(460), words); !ok {
		t.Error("Expected headline within extended look-back")
	}
}

func TestHeadlineDetector_SizeRatioExcludesSmallerText(t *testing.T) {
	var words []model.Word
	words = append(words, makeRow("Main Headline Words", 40, 380, 30)...)
	words = append(words, makeRow("Subhead At Twenty", 40, 420, 20)...)

	headline, ok := NewHeadlineDetector().Detect(anchorAt(460), words)
	if !ok {
		t.Fatal("Expected a headline")
	}
	if headline.Text != "Main Headline Words" {
		t.Errorf("Expected only max-size words, got '%s'", headline.Text)
	}
}

func TestHeadlineDetector_SizeRatioOne(t *testing.T) {
	var words []model.Word
	words = append(words, makeRow("Council Approves Budget", 40, 380, 20)...)
	words = append(words, makeRow("Deck Below", 40, 420, 19)...)

	config := DefaultHeadlineConfig()
	config.SizeRatio = 1
	headline, ok := NewHeadlineDetectorWithConfig(config).Detect(anchorAt(460), words)
	if !ok {
		t.Fatal("Expected a headline at exactly the maximum size")
	}
	if headline.Text != "Council Approves Budget" {
		t.Errorf("Expected only max-size words, got '%s'", headline.Text)
	}
}

func TestHeadlineDetector_MaxLines(t *testing.T) {
	var words []model.Word
	words = append(words, makeRow("Nearby Ad Banner", 40, 300, 24)...)
	words = append(words, makeRow("Real Headline Text", 40, 420, 24)...)

	unbounded, ok := NewHeadlineDetector().Detect(anchorAt(460), words)
	if !ok || unbounded.Text != "Nearby Ad Banner Real Headline Text" {
		t.Fatalf("Expected merged headline, got '%s'", unbounded.Text)
	}

	config := DefaultHeadlineConfig()
	config.MaxLines = 1
	bounded, ok := NewHeadlineDetectorWithConfig(config).Detect(anchorAt(460), words)
	if !ok {
		t.Fatal("Expected a headline")
	}
	if bounded.Text != "Real Headline Text" {
		t.Errorf("Expected line closest to anchor, got '%s'", bounded.Text)
	}
}

func TestHeadlineDetector_RepairsGlyphs(t *testing.T) {
	words := makeRow("BBLLAACCKK Friday Deals Return", 40, 420, 20)

	headline, ok := NewHeadlineDetector().Detect(anchorAt(460), words)
	if !ok {
		t.Fatal("Expected a headline")
	}
	if headline.Text != "BLACK Friday Deals Return" {
		t.Errorf("Expected repaired headline, got '%s'", headline.Text)
	}
}
