package router

import (
	"strings"
)

// ContextBlock is a piece of live information gathered before the LLM call
// (weather report, news headlines). Blocks are appended to the system prompt
// so the model can ground its answer in current data.
type ContextBlock struct {
	Label   string
	Content string
}

// BuildSystemPrompt combines the base persona prompt with any live context
// blocks gathered for this request.
func BuildSystemPrompt(basePrompt string, blocks []ContextBlock) string {
	if len(blocks) == 0 {
		return basePrompt
	}

	var sb strings.Builder
	sb.WriteString(basePrompt)
	sb.WriteString("\n\nLive context gathered for this request:\n")
	for _, block := range blocks {
		content := strings.TrimSpace(block.Content)
		if content == "" {
			continue
		}
		sb.WriteString("\n[")
		sb.WriteString(block.Label)
		sb.WriteString("]\n")
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	sb.WriteString("\nUse this context when it is relevant to the user's question. If it is not relevant, ignore it.")
	return sb.String()
}
