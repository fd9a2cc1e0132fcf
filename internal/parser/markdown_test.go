package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsBecomeChapters(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The leading h1 names the document.
	if doc.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", doc.Title)
	}

	if len(doc.Chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(doc.Chapters))
	}

	if doc.Chapters[0].Title != "Title" {
		t.Errorf("chapter 0: got %q", doc.Chapters[0].Title)
	}
	if !strings.Contains(doc.Chapters[0].Text, "Intro text.") {
		t.Errorf("chapter 0 missing intro: %q", doc.Chapters[0].Text)
	}

	if doc.Chapters[1].Title != "Section A" {
		t.Errorf("chapter 1: got %q", doc.Chapters[1].Title)
	}
	if !strings.Contains(doc.Chapters[1].Text, "Section A content.") {
		t.Errorf("chapter 1: got %q", doc.Chapters[1].Text)
	}

	if doc.Chapters[2].Title != "Section B" {
		t.Errorf("chapter 2: got %q", doc.Chapters[2].Title)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "plain" {
		t.Errorf("expected title from filename, got %q", doc.Title)
	}
	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter for headingless markdown, got %d", len(doc.Chapters))
	}

	text := doc.Chapters[0].Text
	if !strings.Contains(text, "Just some plain text.") {
		t.Errorf("missing first paragraph: %q", text)
	}
	if !strings.Contains(text, "Another paragraph here.") {
		t.Errorf("missing second paragraph: %q", text)
	}
}

func TestMarkdownParser_CodeBlocksKept(t *testing.T) {
	input := "# API Reference\n\nSome intro.\n\n## Endpoints\n\nList of endpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(doc.Chapters))
	}

	endpoints := doc.Chapters[1]
	if endpoints.Title != "Endpoints" {
		t.Errorf("expected title %q, got %q", "Endpoints", endpoints.Title)
	}
	if !strings.Contains(endpoints.Text, "GET /api/users") {
		t.Errorf("expected code block content in text, got %q", endpoints.Text)
	}
	if !strings.Contains(endpoints.Text, "More text after code.") {
		t.Errorf("expected post-code text, got %q", endpoints.Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Chapters) != 0 {
		t.Errorf("expected 0 chapters for empty input, got %d", len(doc.Chapters))
	}
}

func TestMarkdownParser_TitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
