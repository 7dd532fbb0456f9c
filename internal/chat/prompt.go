package chat

import (
	"fmt"
	"strings"
)

// MemoryWindow caps how many prior messages are replayed into the prompt.
const MemoryWindow = 6

// RecentHistory returns the last MemoryWindow messages, oldest first.
func RecentHistory(messages []Message) []Message {
	if len(messages) <= MemoryWindow {
		return messages
	}
	return messages[len(messages)-MemoryWindow:]
}

// BuildPrompt assembles the generation prompt from recent history, optional
// retrieved context and the new question. The persona instruction is not
// included here; the LLM client prepends it on every call.
func BuildPrompt(history []Message, retrieved []string, question string) string {
	var b strings.Builder

	if len(retrieved) > 0 {
		b.WriteString("Relevant context from earlier conversations:\n")
		for _, snippet := range retrieved {
			b.WriteString("- ")
			b.WriteString(snippet)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Conversation so far (may be empty):\n")
	for _, m := range RecentHistory(history) {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}

	fmt.Fprintf(&b, "\nUser: %s\nAssistant:", strings.TrimSpace(question))
	return b.String()
}
