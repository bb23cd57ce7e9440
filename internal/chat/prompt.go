package chat

import (
	"fmt"
	"strings"
)

const basePrompt = "You are an expert coding assistant. Give clear, accurate answers " +
	"about code. Use fenced code blocks for code and keep explanations concise."

// BuildSystemPrompt assembles the system prompt, embedding code context
// when the request carries any. The highlighted selection, if present, is
// called out separately so the model focuses on it.
func BuildSystemPrompt(cc *CodeContext) string {
	if cc == nil {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)

	lang := cc.Language
	if lang == "" {
		lang = "text"
	}

	b.WriteString("\n\nThe user is looking at the following code")
	if cc.FileName != "" {
		fmt.Fprintf(&b, " from %s", cc.FileName)
	}
	fmt.Fprintf(&b, ":\n\n```%s\n%s\n```", lang, cc.Code)

	if cc.HighlightedCode != "" {
		fmt.Fprintf(&b, "\n\nThe user highlighted this portion; focus your answer on it:\n\n```%s\n%s\n```",
			lang, cc.HighlightedCode)
	}

	return b.String()
}
