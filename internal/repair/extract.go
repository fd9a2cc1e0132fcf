package repair

// extractSpan locates the outermost balanced {...} or [...] span in text,
// tolerating surrounding prose and code-fence markers. The walk tracks quote
// and escape state so braces inside string literals do not count toward
// nesting. Returns ok=false when no balanced span exists.
func extractSpan(text string) (span string, ok bool) {
	runes := []rune(text)
	for start := 0; start < len(runes); start++ {
		open := runes[start]
		if open != '{' && open != '[' {
			continue
		}
		if end := matchSpan(runes, start); end >= 0 {
			return string(runes[start : end+1]), true
		}
		// Unbalanced from this opener; try the next one.
	}
	return "", false
}

// matchSpan returns the index of the character closing the span opened at
// start, or -1 if the text ends first.
func matchSpan(runes []rune, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(runes); i++ {
		r := runes[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
			// String content never affects nesting.
		case r == '{' || r == '[':
			depth++
		case r == '}' || r == ']':
			depth--
			if depth == 0 {
				return i
			}
			if depth < 0 {
				return -1
			}
		}
	}
	return -1
}
