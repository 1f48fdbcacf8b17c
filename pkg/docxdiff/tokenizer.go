package docxdiff

import "unicode"

// TokenizeText splits paragraph text into an ordered token sequence under
// the given granularity. Tokenization is information preserving: the
// concatenation of the returned tokens is exactly the input text,
// whitespace included.
//
// Word granularity splits on the boundaries between whitespace runs and
// non-whitespace runs, so whitespace survives as its own tokens. Character
// granularity yields one token per character.
func TokenizeText(text string, granularity Granularity) []string {
	if text == "" {
		return nil
	}

	logger := GetLogger()

	var tokens []string
	switch granularity {
	case GranularityChar:
		for _, r := range text {
			tokens = append(tokens, string(r))
		}
	default:
		runes := []rune(text)
		start := 0
		inSpace := unicode.IsSpace(runes[0])
		for i := 1; i < len(runes); i++ {
			if unicode.IsSpace(runes[i]) != inSpace {
				tokens = append(tokens, string(runes[start:i]))
				start = i
				inSpace = !inSpace
			}
		}
		tokens = append(tokens, string(runes[start:]))
	}

	if logger.IsDebugMode() {
		logger.WithFields(Fields{
			"granularity": granularity,
			"text_length": len(text),
			"token_count": len(tokens),
		}).Debug("Tokenization complete")
	}

	return tokens
}
