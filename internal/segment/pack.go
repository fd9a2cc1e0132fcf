package segment

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidBudget is returned when a caller passes a non-positive size
// budget to Pack.
var ErrInvalidBudget = errors.New("segment: size budget must be positive")

// Chunk is a size-bounded run of whole segments (or sub-segment pieces when a
// single segment overflows the budget), emitted in document order.
type Chunk struct {
	Text      string
	WordCount int
}

// WordCount counts the non-whitespace runes in text. This is the single size
// convention used throughout packing.
func WordCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Pack greedily merges segments into chunks whose WordCount stays within max.
// A segment that alone exceeds the budget is re-split by paragraphs, then by
// sentences; a single sentence over budget is emitted as its own oversized
// chunk rather than dropped or truncated. Chunks partition the input without
// gaps, overlaps, or reordering.
func Pack(segments []Segment, max int) ([]Chunk, error) {
	if max <= 0 {
		return nil, ErrInvalidBudget
	}

	var packed []Chunk
	var current strings.Builder
	count := 0

	flush := func() {
		if count > 0 {
			packed = append(packed, Chunk{Text: current.String(), WordCount: count})
			current.Reset()
			count = 0
		}
	}
	add := func(piece, sep string) {
		if current.Len() > 0 && sep != "" {
			current.WriteString(sep)
		}
		current.WriteString(piece)
		count += WordCount(piece)
	}

	for _, seg := range segments {
		segCount := WordCount(seg.Text)

		if segCount > max {
			// Oversized segment: close the running chunk and recurse into
			// paragraphs, then sentences.
			flush()
			for _, para := range strings.Split(seg.Text, "\n\n") {
				if strings.TrimSpace(para) == "" {
					continue
				}
				paraCount := WordCount(para)
				if paraCount > max {
					for _, sent := range SplitSentences(para) {
						if count+WordCount(sent.Text) > max && count > 0 {
							flush()
						}
						add(sent.Text, "")
					}
				} else {
					if count+paraCount > max && count > 0 {
						flush()
					}
					add(para, "\n\n")
				}
			}
			continue
		}

		if count+segCount > max && count > 0 {
			flush()
		}
		add(seg.Text, "\n\n")
	}
	flush()

	return packed, nil
}
