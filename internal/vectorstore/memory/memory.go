package memory

import (
	"context"
	"sync"

	"ragchat/internal/domain"
)

// Store is an in-memory append-only fragment table. It is primarily a
// test double and a zero-setup config option; the durable store lives in
// the sqlite package.
type Store struct {
	mu        sync.RWMutex
	nextID    int64
	fragments []domain.Fragment
}

func NewStore() *Store { return &Store{nextID: 1} }

// Append stores one fragment and returns its assigned ID. The mutex
// serializes concurrent appends so a scan never sees a half-written row.
func (s *Store) Append(ctx context.Context, source, text string, embedding []float64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	vec := make([]float64, len(embedding))
	copy(vec, embedding)
	s.fragments = append(s.fragments, domain.Fragment{ID: id, Source: source, Text: text, Embedding: vec})
	return id, nil
}

// ScanAll returns a copy of every stored fragment in insertion order.
func (s *Store) ScanAll(ctx context.Context) ([]domain.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out, nil
}
