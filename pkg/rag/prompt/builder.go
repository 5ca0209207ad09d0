package prompt

import (
	"strings"

	"resumegpt-be/pkg/rag"
)

// Builder assembles the single generation prompt from the rendered
// conversation memory, the retrieved fragments, and the current question.
// Field names and ordering are fixed; downstream answer quality depends
// on the model seeing the same layout every turn.
type Builder struct {
	history   string
	fragments []rag.Fragment
	question  string
}

func NewBuilder(history string, fragments []rag.Fragment, question string) *Builder {
	return &Builder{
		history:   history,
		fragments: fragments,
		question:  question,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeHistory(&prompt)
	b.writeDocumentContext(&prompt)
	b.writeQuestion(&prompt)
	b.writeInstructions(&prompt)

	prompt.WriteString("Answer:")
	return prompt.String()
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("Previous conversation:\n")
	prompt.WriteString(b.history)
	prompt.WriteString("\n\n")
}

func (b *Builder) writeDocumentContext(prompt *strings.Builder) {
	prompt.WriteString("Document context:\n")
	texts := make([]string, len(b.fragments))
	for i, f := range b.fragments {
		texts[i] = f.Text
	}
	prompt.WriteString(strings.Join(texts, "\n\n"))
	prompt.WriteString("\n\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("Current question: ")
	prompt.WriteString(b.question)
	prompt.WriteString("\n\n")
}

func (b *Builder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("Instructions:\n")
	prompt.WriteString("- Reference previous conversation when relevant\n")
	prompt.WriteString("- Answer based on the document content provided\n")
	prompt.WriteString("- If information isn't available, say so explicitly\n")
	prompt.WriteString("- Resolve pronouns/references using the chat history\n")
	prompt.WriteString("\n")
}
