package parser

import (
	"strings"
	"testing"
)

func TestTextParser_ParagraphsJoined(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}

	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if doc.Chapters[0].Text != want {
		t.Errorf("chapter text:\ngot  %q\nwant %q", doc.Chapters[0].Text, want)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Chapters) != 0 {
		t.Errorf("expected 0 chapters for empty input, got %d", len(doc.Chapters))
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("Hello world"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	if doc.Chapters[0].Text != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", doc.Chapters[0].Text)
	}
}

func TestTextParser_BlankLinesCollapse(t *testing.T) {
	// Runs of blank (or whitespace-only) lines yield a single paragraph break.
	input := "Para one.\n\n\n\nPara two.\n   \nPara three."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	want := "Para one.\n\nPara two.\n\nPara three."
	if doc.Chapters[0].Text != want {
		t.Errorf("got %q, want %q", doc.Chapters[0].Text, want)
	}
}

func TestForFile_SupportedExtensions(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "c.markdown", "d.html", "e.htm", "f.pdf", "g.docx", "H.TXT"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("%s: expected supported", name)
		}
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"a.csv", "b.exe", "noext"} {
		if _, err := ForFile(name); err == nil {
			t.Errorf("%s: expected error", name)
		}
		if IsSupportedExtension(name) {
			t.Errorf("%s: expected unsupported", name)
		}
	}
}
