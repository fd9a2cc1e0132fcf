package llm

import (
	"context"
	"fmt"
	"strings"
)

const titleSystemPrompt = `You are a title generation assistant. Produce a concise, accurate title for the text you are given. Output the title text only, with no commentary.`

// BuildTitlePrompt creates the prompt for labeling one packed chunk.
func BuildTitlePrompt(content string) string {
	var sb strings.Builder
	sb.WriteString("Generate a short title for the following text.\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("1. The title must capture the core content of the passage\n")
	sb.WriteString("2. Keep it concise, at most 20 characters for CJK text or 8 words otherwise\n")
	sb.WriteString("3. Do not use formulaic labels like \"Part N\" or \"Original title\"\n")
	sb.WriteString("4. Output only the title, no explanation\n\n")
	sb.WriteString("Text:\n")
	sb.WriteString(content)
	sb.WriteString("\n\nTitle:")
	return sb.String()
}

// GenerateTitle asks the title model to label a chunk of text. The returned
// title has wrapping quotes and brackets stripped; an empty result after
// cleaning is an error so callers can apply their fallback label.
func (c *Client) GenerateTitle(ctx context.Context, content string) (string, error) {
	title, _, err := c.chat(ctx, c.titleModel,
		[]chatMessage{
			{Role: "system", Content: titleSystemPrompt},
			{Role: "user", Content: BuildTitlePrompt(content)},
		}, 0.3, 200)
	if err != nil {
		return "", err
	}

	title = CleanTitle(title)
	if title == "" {
		return "", fmt.Errorf("title model returned empty title")
	}
	return title, nil
}

// titleWrappers are decoration characters models like to wrap titles in.
const titleWrappers = "\"'`「」『』【】[]()（）《》<>"

// CleanTitle strips wrapping quotes, brackets, and whitespace from a
// model-generated title.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.Trim(title, titleWrappers)
	// A multi-line response means the model added commentary; keep the first line.
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}
