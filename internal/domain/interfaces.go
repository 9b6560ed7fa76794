package domain

import "context"

// Fragment is the unit of retrieval: a chunk of document text together
// with its embedding vector. ID is assigned by the store and is only
// storage bookkeeping; ranking never depends on it.
type Fragment struct {
	ID        int64
	Source    string
	Text      string
	Embedding []float64
}

// RankedMatch pairs a stored fragment with its similarity score for one
// query. It is never persisted.
type RankedMatch struct {
	Fragment Fragment
	Score    float64
}

// Chunker splits raw document text into pieces suitable for embedding.
type Chunker interface {
	Chunk(text string) ([]string, error)
}

// Embedder converts free text into a numeric vector via an external model.
// An empty model selects the implementation's configured default.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, model, text string) ([]float64, error)
}

// VectorStore is an append-only table of fragments. Append must be atomic
// per fragment: a failed append never shows up in a later ScanAll. ScanAll
// materializes every stored fragment; an empty store yields an empty
// slice. A scan running concurrently with appends may or may not observe
// the new fragments (no snapshot isolation is claimed).
type VectorStore interface {
	Append(ctx context.Context, source, text string, embedding []float64) (int64, error)
	ScanAll(ctx context.Context) ([]Fragment, error)
}

// Generator produces a model reply, in one of two call shapes. Which
// shape to use is the caller's decision, not the engine's.
type Generator interface {
	Chat(ctx context.Context, model string, messages []ChatMessage) (string, error)
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// ChatMessage is a single turn in a chat-shaped generation call.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RAGService defines the operations exposed by the application core.
type RAGService interface {
	Ingest(ctx context.Context, source, text, model string) (int, error)
	Retrieve(ctx context.Context, query, model string, k int) ([]RankedMatch, error)
}
