package segment

import (
	"strings"
	"unicode"
)

// Sentence is an ordered span of source text. Sentences are never reordered
// or mutated after creation.
type Sentence struct {
	Text  string // Sentence text with its terminal punctuation, trimmed.
	Index int    // Zero-based position in the source.
}

// sentenceEnders are the characters that terminate a sentence, covering both
// ASCII and full-width CJK punctuation.
const sentenceEnders = "。！？.!?；;"

func isSentenceEnd(r rune) bool {
	return strings.ContainsRune(sentenceEnders, r)
}

// SplitSentences breaks text into ordered sentence units. A sentence ends at
// a run of sentence-final punctuation, which stays attached to the preceding
// text. Whitespace-only spans are dropped. Empty input yields nil.
func SplitSentences(text string) []Sentence {
	if text == "" {
		return nil
	}

	var sentences []Sentence
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, Sentence{Text: s, Index: len(sentences)})
		}
		current.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		current.WriteRune(r)
		i++
		if !isSentenceEnd(r) {
			continue
		}
		// Absorb the rest of the punctuation run ("!?", "。。。" etc.) and
		// any trailing whitespace, so the separator belongs to this sentence.
		for i < len(runes) && isSentenceEnd(runes[i]) {
			current.WriteRune(runes[i])
			i++
		}
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			current.WriteRune(runes[i])
			i++
		}
		flush()
	}
	flush()

	return sentences
}
