package conversation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInitialPrompt(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "glass jar"},
		{ID: "2", Name: " old t-shirt "},
	}

	prompt := buildInitialPrompt(VariantRecycle, items, "the jar has a metal lid")

	require.Contains(t, prompt, "glass jar, old t-shirt")
	require.Contains(t, prompt, "the jar has a metal lid")
	require.NotContains(t, prompt, "{items}")
	require.NotContains(t, prompt, "{notes_section}")
}

func TestBuildInitialPrompt_NoNotes(t *testing.T) {
	prompt := buildInitialPrompt(VariantRecycle, []Item{{ID: "1", Name: "jar"}}, "  ")

	require.Contains(t, prompt, "jar")
	require.NotContains(t, prompt, "Additional notes")
	require.NotContains(t, prompt, "{notes_section}")
}

func TestBuildInitialPrompt_Variants(t *testing.T) {
	items := []Item{{ID: "1", Name: "wine corks"}}

	recycle := buildInitialPrompt(VariantRecycle, items, "")
	upcycle := buildInitialPrompt(VariantUpcycle, items, "")

	require.Contains(t, recycle, "recycling")
	require.Contains(t, upcycle, "upcycling")
	require.NotEqual(t, recycle, upcycle)
}

func TestBuildFollowUpPrompt(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "glass jar"},
		{Role: RoleAssistant, Content: "Rinse it first."},
	}

	prompt := buildFollowUpPrompt(messages, "what about the lid?", 0)

	require.Equal(t, "Human: glass jar\nAssistant: Rinse it first.\nwhat about the lid?", prompt)
}

func TestBuildFollowUpPrompt_TurnCap(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
		{Role: RoleAssistant, Content: "four"},
	}

	capped := buildFollowUpPrompt(messages, "next", 2)
	require.Equal(t, "Human: three\nAssistant: four\nnext", capped)

	full := buildFollowUpPrompt(messages, "next", 0)
	require.Equal(t, "Human: one\nAssistant: two\nHuman: three\nAssistant: four\nnext", full)
}

func TestItemsTurn(t *testing.T) {
	items := []Item{{Name: "jar"}, {Name: "shirt"}}

	require.Equal(t, "jar, shirt", itemsTurn(items, ""))
	require.Equal(t, "jar, shirt\nNotes: fragile", itemsTurn(items, " fragile "))
}
