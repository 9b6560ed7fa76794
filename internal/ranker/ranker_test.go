package ranker

import (
	"math"
	"reflect"
	"testing"

	"ragchat/internal/domain"
)

const tolerance = 1e-12

func TestCosine_Identities(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.07}
	neg := make([]float64, len(v))
	for i := range v {
		neg[i] = -v[i]
	}

	if got := Cosine(v, v); math.Abs(got-1) > tolerance {
		t.Errorf("Cosine(v, v) = %v, want 1", got)
	}
	if got := Cosine(v, neg); math.Abs(got+1) > tolerance {
		t.Errorf("Cosine(v, -v) = %v, want -1", got)
	}
	if got := Cosine([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Errorf("Cosine(orthogonal) = %v, want 0", got)
	}
}

func TestCosine_ZeroVectorIsZeroNotNaN(t *testing.T) {
	got := Cosine([]float64{0, 0, 0}, []float64{1, 2, 3})
	if got != 0 || math.IsNaN(got) {
		t.Fatalf("Cosine(zero, v) = %v, want 0", got)
	}
}

func corpusOf(vecs ...[]float64) []domain.Fragment {
	out := make([]domain.Fragment, len(vecs))
	for i, v := range vecs {
		out[i] = domain.Fragment{ID: int64(i + 1), Source: "doc.txt", Embedding: v}
	}
	return out
}

func TestRank_DescendingAndTruncated(t *testing.T) {
	query := []float64{1, 0}
	corpus := corpusOf(
		[]float64{0, 1},      // 0.0
		[]float64{1, 0},      // 1.0
		[]float64{1, 1},      // ~0.707
		[]float64{-1, 0},     // -1.0
		[]float64{0.9, 0.01}, // ~1.0 but slightly less
	)

	matches := Rank(query, corpus, 3)
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	if matches[0].Fragment.ID != 2 {
		t.Errorf("best match ID = %d, want 2", matches[0].Fragment.ID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not in descending score order at %d", i)
		}
	}
}

func TestRank_KLargerThanCorpus(t *testing.T) {
	query := []float64{1, 0}
	corpus := corpusOf([]float64{1, 0}, []float64{0, 1})
	if got := len(Rank(query, corpus, 10)); got != 2 {
		t.Fatalf("got %d matches, want all 2", got)
	}
	if got := len(Rank(query, nil, 10)); got != 0 {
		t.Fatalf("empty corpus produced %d matches, want 0", got)
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	query := []float64{1, 0}
	// Parallel vectors all score exactly 1; scan order must survive.
	corpus := corpusOf([]float64{2, 0}, []float64{1, 0}, []float64{5, 0})
	matches := Rank(query, corpus, 3)
	ids := []int64{matches[0].Fragment.ID, matches[1].Fragment.ID, matches[2].Fragment.ID}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("tied matches reordered: got %v, want [1 2 3]", ids)
	}
}

func TestRank_Idempotent(t *testing.T) {
	query := []float64{0.2, 0.8, -0.1}
	corpus := corpusOf(
		[]float64{0.3, 0.7, 0},
		[]float64{-0.2, 0.1, 0.9},
		[]float64{0.2, 0.8, -0.1},
	)
	first := Rank(query, corpus, 5)
	second := Rank(query, corpus, 5)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated Rank over unchanged corpus differs:\n%v\n%v", first, second)
	}
}

func TestRank_SkipsDimensionMismatch(t *testing.T) {
	query := []float64{1, 0}
	corpus := []domain.Fragment{
		{ID: 1, Embedding: []float64{1, 0}},
		{ID: 2, Embedding: []float64{1, 0, 0}}, // wrong dimension
		{ID: 3, Embedding: []float64{0, 1}},
	}
	matches := Rank(query, corpus, 5)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (mismatched fragment excluded)", len(matches))
	}
	for _, m := range matches {
		if m.Fragment.ID == 2 {
			t.Fatal("dimension-mismatched fragment was ranked")
		}
	}
}
