package conversation

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/elliotchance/pie/v2"
)

//go:embed recycle_prompt_template.txt
var recyclePromptTemplate string

//go:embed upcycle_prompt_template.txt
var upcyclePromptTemplate string

// buildInitialPrompt wraps the named items and optional notes in the
// variant's instructional template.
func buildInitialPrompt(variant Variant, items []Item, notes string) string {
	names := pie.Map(items, func(item Item) string {
		return strings.TrimSpace(item.Name)
	})

	notesSection := ""
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		notesSection = " Additional notes from the user: " + trimmed + "."
	}

	templateValues := map[string]any{
		"items":         strings.Join(names, ", "),
		"notes_section": notesSection,
	}

	prompt := recyclePromptTemplate
	if variant == VariantUpcycle {
		prompt = upcyclePromptTemplate
	}

	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	return strings.TrimSpace(prompt)
}

// buildFollowUpPrompt prefixes the raw follow-up text with the whole
// prior transcript, one labeled line per message. The upstream holds
// no state between calls, so context travels with every request.
// A turn cap above zero keeps only the most recent messages.
func buildFollowUpPrompt(messages []Message, text string, turnCap int) string {
	if turnCap > 0 && len(messages) > turnCap {
		messages = messages[len(messages)-turnCap:]
	}

	var builder strings.Builder

	for _, msg := range messages {
		label := "Human"
		if msg.Role == RoleAssistant {
			label = "Assistant"
		}

		builder.WriteString(label)
		builder.WriteString(": ")
		builder.WriteString(msg.Content)
		builder.WriteString("\n")
	}

	builder.WriteString(text)

	return builder.String()
}

// itemsTurn is the user-visible turn recorded for an initial
// submission, and the turn rebuilt when a history entry is reopened.
func itemsTurn(items []Item, notes string) string {
	names := pie.Map(items, func(item Item) string {
		return strings.TrimSpace(item.Name)
	})

	turn := strings.Join(names, ", ")
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		turn += "\nNotes: " + trimmed
	}

	return turn
}
