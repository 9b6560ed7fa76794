package service

import (
	"context"
	"fmt"
	"sync"

	"ragchat/internal/domain"
	"ragchat/internal/logger"
	"ragchat/internal/ranker"
)

// embedWorkers bounds concurrent embedding calls per ingestion. The
// calls are I/O-bound network requests, so a handful in flight keeps
// ingestion fast without hammering the embedding server.
const embedWorkers = 8

// RAGServiceImpl composes the chunker, embedder and vector store into
// the ingestion and retrieval pipelines. It keeps no state across
// calls; the store is the only shared mutable resource.
type RAGServiceImpl struct {
	chunker  domain.Chunker
	embedder domain.Embedder
	store    domain.VectorStore
}

func NewRAGService(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore) *RAGServiceImpl {
	return &RAGServiceImpl{chunker: chunker, embedder: embedder, store: store}
}

// Ingest splits the document into chunks, embeds each chunk and appends
// the successful ones to the store under the given source identifier.
// A failed embedding skips that chunk and never aborts the rest of the
// document; the returned count is the number of fragments actually
// written, which may be less than the chunk count. Empty text is not an
// error, it just writes nothing.
func (s *RAGServiceImpl) Ingest(ctx context.Context, source, text, model string) (int, error) {
	chunks, err := s.chunker.Chunk(text)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	// Embed concurrently, but collect results by chunk index so the
	// persisted order (and therefore the count) is deterministic.
	vectors := make([][]float64, len(chunks))
	sem := make(chan struct{}, embedWorkers)
	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			vec, err := s.embedder.Embed(ctx, model, chunks[idx])
			if err != nil {
				logger.Error("embedding chunk %d of %q failed: %v", idx, source, err)
				return
			}
			vectors[idx] = vec
		}(i)
	}
	wg.Wait()

	written := 0
	for i, vec := range vectors {
		if vec == nil {
			continue
		}
		if _, err := s.store.Append(ctx, source, chunks[i], vec); err != nil {
			return written, fmt.Errorf("storing fragment %d of %q: %w", i, source, err)
		}
		written++
	}
	logger.Info("ingested %q: %d of %d chunks embedded and stored", source, written, len(chunks))
	return written, nil
}

// Retrieve embeds the query, scans the full store and ranks every
// fragment against the query vector, returning the top k matches. A
// query-embedding failure aborts the whole call: there is nothing to
// rank against. An empty store is a valid, common case and yields an
// empty match list, not an error.
func (s *RAGServiceImpl) Retrieve(ctx context.Context, query, model string, k int) ([]domain.RankedMatch, error) {
	vec, err := s.embedder.Embed(ctx, model, query)
	if err != nil {
		return nil, &domain.QueryEmbeddingError{Err: err}
	}
	corpus, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning vector store: %w", err)
	}
	if len(corpus) == 0 {
		return nil, nil
	}
	return ranker.Rank(vec, corpus, k), nil
}

var _ domain.RAGService = (*RAGServiceImpl)(nil)
