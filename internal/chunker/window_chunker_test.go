package chunker

import (
	"errors"
	"strings"
	"testing"

	"ragchat/internal/domain"
)

func TestChunk_DefaultWindows(t *testing.T) {
	c, err := NewWindowChunker(300, 50)
	if err != nil {
		t.Fatalf("NewWindowChunker failed: %v", err)
	}
	text := strings.Repeat("a", 700)
	chunks, err := c.Chunk(text)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	// Offsets 0, 250, 500: three windows.
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 300 || len(chunks[1]) != 300 {
		t.Errorf("full windows have lengths %d, %d; want 300, 300", len(chunks[0]), len(chunks[1]))
	}
	if len(chunks[2]) != 200 {
		t.Errorf("final window length = %d, want 200 (truncated, not padded)", len(chunks[2]))
	}
}

func TestChunk_CoversTextWithoutGaps(t *testing.T) {
	cases := []struct {
		size, overlap, length int
	}{
		{10, 0, 95},
		{10, 3, 95},
		{300, 50, 700},
		{5, 4, 12},
	}
	for _, tc := range cases {
		c, err := NewWindowChunker(tc.size, tc.overlap)
		if err != nil {
			t.Fatalf("NewWindowChunker(%d,%d) failed: %v", tc.size, tc.overlap, err)
		}
		text := make([]byte, tc.length)
		for i := range text {
			text[i] = byte('a' + i%26)
		}
		chunks, err := c.Chunk(string(text))
		if err != nil {
			t.Fatalf("Chunk failed: %v", err)
		}
		step := tc.size - tc.overlap
		want := (maxInt(tc.length-tc.overlap, 0) + step - 1) / step
		if len(chunks) != want {
			t.Errorf("size=%d overlap=%d len=%d: got %d chunks, want %d",
				tc.size, tc.overlap, tc.length, len(chunks), want)
		}
		// Every byte of the text must appear in at least one chunk.
		covered := 0
		for i, ch := range chunks {
			start := i * step
			if !strings.HasPrefix(string(text[start:]), ch) {
				t.Fatalf("chunk %d does not match text at offset %d", i, start)
			}
			if end := start + len(ch); end > covered {
				if start > covered {
					t.Fatalf("gap before chunk %d: covered %d, chunk starts at %d", i, covered, start)
				}
				covered = end
			}
		}
		if covered != tc.length {
			t.Errorf("chunks cover %d bytes, want %d", covered, tc.length)
		}
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c, err := NewWindowChunker(0, -1)
	if err != nil {
		t.Fatalf("NewWindowChunker failed: %v", err)
	}
	chunks, err := c.Chunk("")
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("empty input produced %d chunks, want 0", len(chunks))
	}
}

func TestNewWindowChunker_RejectsNonAdvancingWindow(t *testing.T) {
	for _, overlap := range []int{300, 400} {
		if _, err := NewWindowChunker(300, overlap); !errors.Is(err, domain.ErrChunkConfig) {
			t.Errorf("overlap=%d: got err %v, want ErrChunkConfig", overlap, err)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
