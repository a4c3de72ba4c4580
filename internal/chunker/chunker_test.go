package chunker

import (
	"strings"
	"testing"
)

func TestSplit_ReconstructsWordSequence(t *testing.T) {
	text := "the quick   brown fox\njumps over\tthe lazy dog again and again"
	want := strings.Fields(text)

	for _, size := range []int{1, 5, 10, 20, 2000} {
		chunks := Split(text, size)
		got := strings.Fields(strings.Join(chunks, " "))
		if len(got) != len(want) {
			t.Fatalf("size %d: expected %d words, got %d", size, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("size %d: word %d: expected %q, got %q", size, i, want[i], got[i])
			}
		}
	}
}

func TestSplit_RespectsSizeBound(t *testing.T) {
	words := []string{"alpha", "bet", "gamma", "de", "epsilon", "z", "eta", "theta"}
	text := strings.Join(words, " ")

	for _, size := range []int{8, 12, 16} {
		for _, chunk := range Split(text, size) {
			if len(chunk) > size {
				t.Errorf("size %d: chunk %q exceeds limit (%d chars)", size, chunk, len(chunk))
			}
			if chunk == "" {
				t.Errorf("size %d: empty chunk emitted", size)
			}
		}
	}
}

func TestSplit_OversizedWordEmittedWhole(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := Split("small "+long+" tail", 10)

	found := false
	for _, chunk := range chunks {
		if chunk == long {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected oversized word as its own chunk, got %q", chunks)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if chunks := Split("", 2000); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := Split("   \n\t ", 2000); len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestSplit_ExactChunkCount(t *testing.T) {
	// 450 words of 9 chars: greedy fill packs 200 per chunk (200*10-1 = 1999).
	words := make([]string, 450)
	for i := range words {
		words[i] = "abcdefghi"
	}
	chunks := Split(strings.Join(words, " "), 2000)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 2000 {
			t.Errorf("chunk %d has %d chars, limit is 2000", i+1, len(chunk))
		}
	}
}
