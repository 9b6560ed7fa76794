package domain

import (
	"errors"
	"fmt"
)

// ErrChunkConfig reports an invalid chunker configuration (overlap not
// strictly less than size). The chunker would never advance with such a
// window, so this fails fast instead of looping.
var ErrChunkConfig = errors.New("chunk overlap must be strictly less than chunk size")

// ErrUnsupportedFile reports a document type the ingester cannot read.
// Extraction from binary formats is handled outside this engine.
var ErrUnsupportedFile = errors.New("unsupported file type")

// QueryEmbeddingError wraps a failure to embed the query text. Unlike
// per-fragment failures during ingestion, this aborts the whole
// retrieval: there is nothing to rank against.
type QueryEmbeddingError struct {
	Err error
}

func (e *QueryEmbeddingError) Error() string {
	return fmt.Sprintf("query embedding failed: %v", e.Err)
}

func (e *QueryEmbeddingError) Unwrap() error { return e.Err }
