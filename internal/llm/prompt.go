package llm

import (
	"fmt"
	"strings"
)

// Interpretation is the structured payload the interpretation prompt asks the
// model to produce for one restructured section.
type Interpretation struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

const interpretationPrompt = `Read the following book section and produce an interpretation as a single JSON object with these fields:

- "title": the section title, possibly refined (string)
- "summary": a faithful summary of the section in 3-5 sentences (string)
- "key_points": the 3-7 most important takeaways (list of strings)

Rules:
- Stay faithful to the text; do not invent facts
- Write the summary in the same language as the section
- Respond with ONLY the JSON object, no other text`

// BuildInterpretationPrompt creates the full interpretation prompt for one
// section, including book and section context.
func BuildInterpretationPrompt(bookTitle, sectionTitle, content string) string {
	var sb strings.Builder
	sb.WriteString(interpretationPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("Book: %q\n", bookTitle))
	sb.WriteString(fmt.Sprintf("Section: %q\n", sectionTitle))
	sb.WriteString("---\n")
	sb.WriteString(content)
	return sb.String()
}
