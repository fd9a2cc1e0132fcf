package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/avolkov/restruct/internal/document"
)

// Parser converts raw document bytes into a chaptered Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// titleFromFilename derives a document title by stripping the extension.
func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// chapterBuilder accumulates text under the current heading and flushes
// completed chapters in source order. Shared by the heading-aware parsers.
type chapterBuilder struct {
	chapters []document.Chapter
	title    string
	page     int
	text     strings.Builder
}

func (b *chapterBuilder) addText(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(t)
}

// startChapter closes the chapter in progress and opens a new one.
func (b *chapterBuilder) startChapter(title string, page int) {
	b.flush()
	b.title = title
	b.page = page
}

func (b *chapterBuilder) flush() {
	text := strings.TrimSpace(b.text.String())
	if text != "" || b.title != "" {
		b.chapters = append(b.chapters, document.Chapter{
			Title: b.title,
			Text:  text,
			Page:  b.page,
		})
	}
	b.title = ""
	b.text.Reset()
}
