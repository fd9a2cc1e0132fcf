package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/avolkov/restruct/internal/document"
)

// TextParser handles plain text files. The whole file becomes one chapter;
// blank lines delimit paragraphs, which the packer later uses as split points.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := &document.Document{Title: titleFromFilename(filename)}
	if len(paragraphs) > 0 {
		doc.Chapters = []document.Chapter{{
			Title: doc.Title,
			Text:  strings.Join(paragraphs, "\n\n"),
		}}
	}
	return doc, nil
}
