package memory

import (
	"fmt"
	"strings"
)

// Turn is one question/answer exchange, immutable once recorded.
// Ordinals are 1-based, strictly increasing and contiguous within a
// conversation.
type Turn struct {
	Question string
	Answer   string
	Ordinal  int
}

// EstimateTokens approximates token usage as character count / 4.
// Deliberately rough: the rolling-summary trigger depends on this
// heuristic's magnitude, not on exact tokenizer output.
func EstimateTokens(text string) int {
	return len(text) / 4
}

func estimateTurnTokens(turns []Turn) int {
	total := 0
	for _, t := range turns {
		total += EstimateTokens(t.Question) + EstimateTokens(t.Answer)
	}
	return total
}

// renderTurns formats turns as an alternating Human/Assistant transcript,
// oldest first.
func renderTurns(turns []Turn) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Human: %s\nAssistant: %s", t.Question, t.Answer)
	}
	return sb.String()
}
