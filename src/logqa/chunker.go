package logqa

const (
	defaultChunkRunes = 500
	defaultOverlap    = 50
)

// SplitText slices text into overlapping windows. Zero or negative values
// select the defaults (500 runes with a 50-rune overlap).
func SplitText(text string, maxRunes, overlap int) []string {
	if maxRunes <= 0 {
		maxRunes = defaultChunkRunes
	}
	if overlap < 0 || overlap >= maxRunes {
		overlap = defaultOverlap
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, len(runes)/(maxRunes-overlap)+1)
	for i := 0; i < len(runes); i += maxRunes - overlap {
		end := i + maxRunes
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
