package summary

// DefaultChunkSize is the chunk length in runes.
const DefaultChunkSize = 8000

// Chunk splits text into consecutive windows of size runes; the last may be shorter.
// Windows do not overlap and ignore word boundaries, so joining them gives text back.
// Empty text yields no chunks. size <= 0 means DefaultChunkSize.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{text}
	}
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
