package repair

import (
	"regexp"
	"strings"
)

// Deep-thinking models interleave their reasoning with the final answer in a
// handful of recognizable shapes. Each pattern captures one reasoning block.
var reasoningPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<thinking>(.*?)</thinking>`),
	regexp.MustCompile(`(?is)<reasoning>(.*?)</reasoning>`),
	regexp.MustCompile("(?is)```thinking\\s*(.*?)```"),
}

// splitReasoning separates an optional reasoning preamble from the candidate
// payload. Multiple reasoning blocks are joined with a divider. When no
// recognizable marker is present the reasoning is empty and the whole text is
// the candidate payload.
func splitReasoning(raw string) (reasoning, body string) {
	body = raw
	var blocks []string
	for _, pat := range reasoningPatterns {
		for _, m := range pat.FindAllStringSubmatch(body, -1) {
			if block := strings.TrimSpace(m[1]); block != "" {
				blocks = append(blocks, block)
			}
		}
		body = pat.ReplaceAllString(body, "")
	}
	return strings.Join(blocks, "\n\n---\n\n"), strings.TrimSpace(body)
}
