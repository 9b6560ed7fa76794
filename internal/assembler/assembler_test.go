package assembler

import (
	"strings"
	"testing"

	"ragchat/internal/domain"
)

func match(source, text string, score float64) domain.RankedMatch {
	return domain.RankedMatch{
		Fragment: domain.Fragment{Source: source, Text: text},
		Score:    score,
	}
}

func TestAssemble_Empty(t *testing.T) {
	if got := Assemble(nil); got != "" {
		t.Fatalf("Assemble(nil) = %q, want empty string", got)
	}
}

func TestAssemble_GroupsBySourceInRankOrder(t *testing.T) {
	matches := []domain.RankedMatch{
		match("b.txt", "best", 0.9),
		match("a.txt", "second", 0.8),
		match("b.txt", "third", 0.7),
	}
	got := Assemble(matches)

	bIdx := strings.Index(got, "From file: b.txt")
	aIdx := strings.Index(got, "From file: a.txt")
	if bIdx < 0 || aIdx < 0 {
		t.Fatalf("missing source headers in %q", got)
	}
	// b.txt ranked first, so its group comes first.
	if bIdx > aIdx {
		t.Errorf("source groups out of first-appearance order:\n%s", got)
	}
	// Within b.txt, fragments keep ranked order and are visibly delimited.
	if !strings.Contains(got, "best\n\n---\n\nthird") {
		t.Errorf("fragments of one source not joined in ranked order:\n%s", got)
	}
}

func TestAssemble_SingleSource(t *testing.T) {
	got := Assemble([]domain.RankedMatch{match("doc.txt", "only", 1)})
	want := "📄 **From file: doc.txt**\n\nonly"
	if got != want {
		t.Fatalf("Assemble = %q, want %q", got, want)
	}
}
