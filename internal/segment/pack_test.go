package segment

import (
	"errors"
	"strings"
	"testing"
	"unicode"
)

func seg(text string) Segment {
	return Segment{Text: text, Sentences: SplitSentences(text)}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestPack_InvalidBudget(t *testing.T) {
	if _, err := Pack([]Segment{seg("hi.")}, 0); !errors.Is(err, ErrInvalidBudget) {
		t.Errorf("budget 0: got %v, want ErrInvalidBudget", err)
	}
	if _, err := Pack([]Segment{seg("hi.")}, -5); !errors.Is(err, ErrInvalidBudget) {
		t.Errorf("budget -5: got %v, want ErrInvalidBudget", err)
	}
}

func TestPack_GreedyMerge(t *testing.T) {
	segments := []Segment{seg("abc."), seg("def."), seg("ghi.")}
	chunks, err := Pack(segments, 9)
	if err != nil {
		t.Fatal(err)
	}
	// 4+4=8 fits, adding the third (12) would not.
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %#v", len(chunks), chunks)
	}
	if chunks[0].Text != "abc.\n\ndef." {
		t.Errorf("chunk 0: got %q", chunks[0].Text)
	}
	if chunks[0].WordCount != 8 {
		t.Errorf("chunk 0: got count %d, want 8", chunks[0].WordCount)
	}
	if chunks[1].Text != "ghi." {
		t.Errorf("chunk 1: got %q", chunks[1].Text)
	}
}

func TestPack_WordCountExcludesWhitespace(t *testing.T) {
	if got := WordCount("a b\tc\nd"); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := WordCount("句子一。"); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := WordCount("   \n\t"); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestPack_BudgetRespectedForSplittableInput(t *testing.T) {
	var segments []Segment
	for i := 0; i < 10; i++ {
		segments = append(segments, seg("one two three four five."))
	}
	chunks, err := Pack(segments, 50)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range chunks {
		if c.WordCount > 50 {
			t.Errorf("chunk %d: count %d exceeds budget 50", i, c.WordCount)
		}
		if c.WordCount != WordCount(c.Text) {
			t.Errorf("chunk %d: stored count %d != computed %d", i, c.WordCount, WordCount(c.Text))
		}
	}
}

func TestPack_NoContentLost(t *testing.T) {
	segments := []Segment{
		seg("first block of text here."),
		seg("second block follows on."),
		seg("third block closes it out."),
	}
	chunks, err := Pack(segments, 12)
	if err != nil {
		t.Fatal(err)
	}

	var joined strings.Builder
	for _, c := range chunks {
		joined.WriteString(c.Text)
	}
	var source strings.Builder
	for _, s := range segments {
		source.WriteString(s.Text)
	}
	if stripSpace(joined.String()) != stripSpace(source.String()) {
		t.Errorf("content changed across packing:\ngot  %q\nwant %q", joined.String(), source.String())
	}
}

func TestPack_OversizedSegmentSplitsByParagraph(t *testing.T) {
	text := "para one sentence. another here.\n\npara two sentence. more text."
	chunks, err := Pack([]Segment{seg(text)}, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %#v", len(chunks), chunks)
	}
	if strings.Contains(chunks[0].Text, "para two") {
		t.Errorf("chunk 0 crossed the paragraph boundary: %q", chunks[0].Text)
	}
}

func TestPack_OversizedParagraphSplitsBySentence(t *testing.T) {
	text := "first sentence runs long enough. second sentence also runs long. third one too for good measure."
	chunks, err := Pack([]Segment{seg(text)}, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.WordCount > 30 {
			t.Errorf("chunk %d: count %d exceeds budget 30", i, c.WordCount)
		}
	}
}

func TestPack_OversizedSentenceEmittedWhole(t *testing.T) {
	// A single sentence above budget cannot be split further; it must come
	// through intact as its own chunk rather than dropped or truncated.
	long := "oneunbreakablesentencewithoutanyspacesinit."
	chunks, err := Pack([]Segment{seg(long)}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != long {
		t.Errorf("got %q, want the sentence intact", chunks[0].Text)
	}
}

func TestPack_CJKSegmentsWithinBudget(t *testing.T) {
	sentences := SplitSentences("句子一。句子二。完全不相关的句子三！句子四延续前文。")
	segments := Split(sentences, Options{})
	chunks, err := Pack(segments, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %#v", len(chunks), chunks)
	}
	if chunks[0].WordCount != 8 || chunks[1].WordCount != 18 {
		t.Errorf("got counts %d and %d, want 8 and 18", chunks[0].WordCount, chunks[1].WordCount)
	}
}

func TestPack_EmptyInput(t *testing.T) {
	chunks, err := Pack(nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}
