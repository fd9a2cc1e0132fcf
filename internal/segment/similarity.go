package segment

import (
	"strings"
	"unicode"
)

// Similarity computes word-level Jaccard overlap between two sentences,
// returning a score in [0,1]. It is 0 when either token set is empty.
// Deterministic and pure.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// tokenSet builds the unique-token set for a sentence: lowercase, punctuation
// stripped, CJK characters as individual tokens, everything else split on
// whitespace. CJK gets the per-character treatment because the script has no
// word separators.
func tokenSet(text string) map[string]struct{} {
	var norm []rune
	for _, r := range strings.ToLower(text) {
		if isCJK(r) || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			norm = append(norm, r)
		}
	}

	set := make(map[string]struct{})
	for _, r := range norm {
		if isCJK(r) {
			set[string(r)] = struct{}{}
		}
	}
	for _, word := range strings.Fields(string(norm)) {
		set[word] = struct{}{}
	}
	return set
}

// isCJK reports whether r falls in the CJK Unified Ideographs block.
func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}
