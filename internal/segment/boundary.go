package segment

import "strings"

// Segment is a topic-coherent, contiguous run of sentences. Concatenating all
// segments in order reproduces the source text modulo the whitespace
// normalization applied during sentence splitting.
type Segment struct {
	Text      string
	Sentences []Sentence
}

// Options tunes boundary detection. Zero values take the defaults below.
// Threshold and Window are deliberately tunable rather than hard contracts.
type Options struct {
	Threshold float64 // Smoothed similarity below this cuts a boundary.
	Window    int     // Smoothing window over adjacent-pair similarities.
	MinGap    int     // Minimum sentences between consecutive boundaries.
}

const (
	DefaultThreshold = 0.3
	DefaultWindow    = 3
	DefaultMinGap    = 2

	// dropRatio marks a local similarity minimum: a smoothed score this far
	// below both neighbors is a topic shift even above the threshold.
	dropRatio = 0.7
)

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.MinGap <= 0 {
		o.MinGap = DefaultMinGap
	}
	return o
}

// Split groups an ordered sentence sequence into topic-coherent segments.
// Adjacent-pair similarities are smoothed with a centered window mean; a
// boundary is placed after sentence i when the smoothed score dips below the
// threshold, or forms a pronounced local minimum against its neighbors.
// The scan is left-to-right, so ties resolve to the earliest position.
// Every sentence lands in exactly one segment, in original order; input with
// no detectable topic shift yields a single segment. Never fails.
func Split(sentences []Sentence, opts Options) []Segment {
	if len(sentences) == 0 {
		return nil
	}
	opts = opts.withDefaults()
	if len(sentences) == 1 {
		return []Segment{makeSegment(sentences)}
	}

	sims := make([]float64, len(sentences)-1)
	for i := 0; i < len(sentences)-1; i++ {
		sims[i] = Similarity(sentences[i].Text, sentences[i+1].Text)
	}

	window := opts.Window
	if window > len(sims) {
		window = len(sims)
	}
	if window < 2 {
		return []Segment{makeSegment(sentences)}
	}

	// Centered window means over the raw similarity curve.
	means := make([]float64, len(sims))
	for i := range sims {
		start := i - window/2
		if start < 0 {
			start = 0
		}
		end := i + window/2 + 1
		if end > len(sims) {
			end = len(sims)
		}
		sum := 0.0
		for _, s := range sims[start:end] {
			sum += s
		}
		means[i] = sum / float64(end-start)
	}

	// Interior positions only: the first and last sentence pairs never host
	// a boundary check.
	var splits []int
	for i := 1; i < len(means)-1; i++ {
		if means[i] < opts.Threshold ||
			(means[i] < means[i-1]*dropRatio && means[i] < means[i+1]*dropRatio) {
			splits = append(splits, i+1) // Cut between sentence i and i+1.
		}
	}

	// Discard boundaries packed closer than MinGap sentences.
	if len(splits) > 1 {
		filtered := splits[:1]
		for _, s := range splits[1:] {
			if s-filtered[len(filtered)-1] >= opts.MinGap {
				filtered = append(filtered, s)
			}
		}
		splits = filtered
	}

	var segments []Segment
	start := 0
	for _, split := range splits {
		if split > start {
			segments = append(segments, makeSegment(sentences[start:split]))
			start = split
		}
	}
	if start < len(sentences) {
		segments = append(segments, makeSegment(sentences[start:]))
	}
	return segments
}

func makeSegment(sentences []Sentence) Segment {
	var sb strings.Builder
	for _, s := range sentences {
		sb.WriteString(s.Text)
	}
	owned := make([]Sentence, len(sentences))
	copy(owned, sentences)
	return Segment{Text: sb.String(), Sentences: owned}
}
