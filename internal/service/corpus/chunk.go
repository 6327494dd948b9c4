package corpus

// DefaultChunkSize bounds the text scanned per retrieval pass over large books.
const DefaultChunkSize = 100_000

// ChunkText cuts text every size characters. Boundaries ignore sentences.
func ChunkText(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
