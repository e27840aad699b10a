package chunker

import "strings"

const (
	DefaultChunkSize = 2000
	DefaultOverlap   = 400

	minChunkSize = 100
	maxChunkSize = 10000

	// maxChunks caps output length regardless of input size.
	maxChunks = 10000
)

// Split cuts text into overlapping windows of at most size characters.
// A size or overlap <= 0 falls back to the defaults. Size is clamped to
// [100, 10000] and overlap to [0, size-50]. Every returned chunk is
// trimmed and non-empty; the sequence is always finite.
func Split(text string, size, overlap int) []string {
	if text == "" {
		return []string{}
	}

	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultOverlap
	}

	if size < minChunkSize {
		size = minChunkSize
	}
	if size > maxChunkSize {
		size = maxChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap > size-50 {
		overlap = size - 50
	}

	runes := []rune(text)
	if len(runes) <= size {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return []string{}
		}
		return []string{trimmed}
	}

	step := size - overlap
	maxIterations := (len(runes)+step-1)/step + 10

	chunks := make([]string, 0, len(runes)/step+1)
	start := 0
	for iteration := 0; start < len(runes) && iteration < maxIterations; iteration++ {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Advance; if the overlap would stall the window, force progress.
		next := end - overlap
		if next <= start {
			forced := size / 2
			if forced < 1 {
				forced = 1
			}
			start += forced
		} else {
			start = next
		}

		if len(chunks) >= maxChunks {
			break
		}
	}

	return chunks
}
