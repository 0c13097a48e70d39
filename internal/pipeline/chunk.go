package pipeline

import "unicode/utf8"

// SplitText slices text into consecutive chunks of at most limit characters,
// in order, with no attempt at word or sentence boundaries. Slicing is by
// rune so a multi-byte character is never cut in half. Empty input yields
// no chunks.
func SplitText(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
