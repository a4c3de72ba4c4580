package chunker

import "strings"

// Split cuts text into word-boundary chunks of at most maxChunkSize
// characters. Words are accumulated greedily; a single word longer than
// maxChunkSize is emitted as its own oversized chunk rather than truncated.
// Empty input yields no chunks.
func Split(text string, maxChunkSize int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && current.Len()+len(word)+1 > maxChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
