package chunker

import "ragchat/internal/domain"

// Default window geometry, chosen for recall rather than semantic
// cleanliness: 300-byte windows with a 50-byte overlap so phrases cut by
// a window edge still appear whole in the neighboring chunk.
const (
	DefaultSize    = 300
	DefaultOverlap = 50
)

// WindowChunker splits text into fixed-size overlapping windows. It cuts
// on raw byte offsets, not sentence or paragraph boundaries; that is a
// deliberate simplicity/recall tradeoff, not an oversight.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker creates a window chunker. Non-positive size and
// negative overlap fall back to the defaults; an overlap that is not
// strictly smaller than the size is a configuration error, since the
// window would never advance.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if size-overlap <= 0 {
		return nil, domain.ErrChunkConfig
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Chunk returns successive windows of the text starting at offsets
// 0, size-overlap, 2*(size-overlap), and so on. The final window is
// truncated by the end of the text, never padded. Empty input yields no
// chunks rather than a single empty chunk.
func (c *WindowChunker) Chunk(text string) ([]string, error) {
	step := c.size - c.overlap
	var chunks []string
	for i := 0; i < len(text); i += step {
		end := i + c.size
		if end >= len(text) {
			// Final window, truncated by the end of the text.
			chunks = append(chunks, text[i:])
			break
		}
		chunks = append(chunks, text[i:end])
	}
	return chunks, nil
}
