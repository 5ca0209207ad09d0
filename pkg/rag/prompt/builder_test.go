package prompt

import (
	"testing"

	"resumegpt-be/pkg/rag"

	"github.com/stretchr/testify/assert"
)

func TestBuildLayout(t *testing.T) {
	fragments := []rag.Fragment{
		{Text: "worked at Acme for 5 years", SourceID: "r#0"},
		{Text: "led a team of 4 engineers", SourceID: "r#1"},
	}

	got := NewBuilder("Human: hi\nAssistant: hello", fragments, "what did they do at Acme?").Build()

	want := `Previous conversation:
Human: hi
Assistant: hello

Document context:
worked at Acme for 5 years

led a team of 4 engineers

Current question: what did they do at Acme?

Instructions:
- Reference previous conversation when relevant
- Answer based on the document content provided
- If information isn't available, say so explicitly
- Resolve pronouns/references using the chat history

Answer:`

	assert.Equal(t, want, got)
}

func TestBuildEmptyHistoryAndFragments(t *testing.T) {
	got := NewBuilder("", nil, "first question").Build()

	assert.Contains(t, got, "Previous conversation:\n\n")
	assert.Contains(t, got, "Document context:\n\n")
	assert.Contains(t, got, "Current question: first question")
}
