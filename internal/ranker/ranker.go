package ranker

import (
	"math"
	"sort"

	"ragchat/internal/domain"
	"ragchat/internal/logger"
)

// DefaultTopK is the number of matches returned when the caller does not
// ask for a specific k.
const DefaultTopK = 5

// Cosine computes the cosine similarity of two vectors: their dot
// product divided by the product of their Euclidean norms. A
// zero-magnitude vector has no direction to compare, so the result is
// defined as 0 rather than NaN. Callers must ensure the vectors share a
// dimension.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Rank scores every corpus fragment against the query vector and
// returns the top k matches in descending score order. Fragments whose
// embedding dimension does not match the query are excluded from the
// comparison (logged, never fatal). Equal scores keep their corpus
// order, a guarantee the tests rely on. This is a brute-force full
// scan; there is no index.
func Rank(query []float64, corpus []domain.Fragment, k int) []domain.RankedMatch {
	if k <= 0 {
		k = DefaultTopK
	}
	matches := make([]domain.RankedMatch, 0, len(corpus))
	for _, f := range corpus {
		if len(f.Embedding) != len(query) {
			logger.Error("skipping fragment %d from %q: embedding dimension %d, query dimension %d",
				f.ID, f.Source, len(f.Embedding), len(query))
			continue
		}
		matches = append(matches, domain.RankedMatch{Fragment: f, Score: Cosine(query, f.Embedding)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}
