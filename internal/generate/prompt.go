package generate

import (
	"fmt"
	"strings"

	"github.com/dshills/comet/internal/style"
)

const systemPromptBase = `You are an expert software engineer writing a commit message for the changes described below.

Guidelines:
- Summarize the intent of the change, not the mechanics of the diff.
- Write the subject line in the imperative mood.
- Add a short body only when the subject alone cannot explain the change.
- Never mention files by name unless the change is about that file.
- Respond with the commit message only: no preamble, no explanation, no code fences.`

// SystemPrompt renders the system prompt, folding in the workspace's
// commit style rules.
func SystemPrompt(rules *style.Rules) string {
	return systemPromptBase + "\n\nStyle:\n" + strings.TrimSpace(style.PromptSection(rules))
}

// UserPrompt renders the user prompt around the context document. When
// previousMessage is non-empty the prompt opens with a directive to differ
// from it and closes by restating the rejected message, so the instruction
// survives providers that weigh the end of the prompt most heavily.
func UserPrompt(document, previousMessage string) string {
	var b strings.Builder

	if previousMessage != "" {
		b.WriteString("A commit message was already generated for this exact change set and was not used. Produce a meaningfully different message: change the framing or emphasis, not just the wording.\n\n")
	}

	b.WriteString("Write a commit message for the following changes.\n\n")
	b.WriteString("--- BEGIN CHANGE CONTEXT ---\n")
	b.WriteString(document)
	b.WriteString("\n--- END CHANGE CONTEXT ---\n")

	if previousMessage != "" {
		fmt.Fprintf(&b, "\nThe message below was already rejected. Do not produce it or a near-duplicate of it:\n%s\n", previousMessage)
	}

	return b.String()
}
