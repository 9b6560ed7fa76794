package sqlite

import (
	"encoding/json"
	"fmt"
)

// EncodeEmbedding serializes a vector as a JSON array of numbers. Go
// emits the shortest decimal that round-trips each float64 exactly, so
// DecodeEmbedding(EncodeEmbedding(v)) returns v bit for bit and ranking
// over re-read vectors matches ranking over the in-memory ones.
func EncodeEmbedding(vec []float64) (string, error) {
	if len(vec) == 0 {
		return "", fmt.Errorf("refusing to store empty embedding")
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return "", fmt.Errorf("encode embedding: %w", err)
	}
	return string(data), nil
}

// DecodeEmbedding parses a stored embedding column back into a vector.
func DecodeEmbedding(s string) ([]float64, error) {
	var vec []float64
	if err := json.Unmarshal([]byte(s), &vec); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("decode embedding: empty vector")
	}
	return vec, nil
}
