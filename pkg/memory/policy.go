// Package memory implements the pluggable conversation-memory policies
// that decide how much chat history is exposed to the next generation
// call: full buffer, fixed window, or rolling summary.
package memory

import (
	"context"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/pkg/llm"
)

// Variant names, accepted verbatim over the API.
const (
	VariantBuffer  = "buffer"
	VariantWindow  = "window"
	VariantSummary = "summary"
)

const (
	// DefaultWindowSize is the number of turns a window policy renders.
	DefaultWindowSize = 5

	// DefaultTokenBudget is the estimated-token threshold above which the
	// summary policy compacts old turns.
	DefaultTokenBudget = 1000
)

// Policy converts the recorded turns into a bounded string for the next
// prompt and decides what to retain.
//
// Every policy keeps the permanent turn log intact; bounding only affects
// what Render exposes. Append may call the LLM (summary variant) and is
// the only method that can fail.
type Policy interface {
	// Name returns the variant name this policy was built from.
	Name() string

	// Render returns the bounded textual representation of the history.
	Render() string

	// Append records a completed turn. For the summary variant this may
	// trigger one compaction call to the LLM; a compaction error leaves
	// the turn recorded verbatim.
	Append(ctx context.Context, turn Turn) error

	// Clear drops all recorded state.
	Clear()

	// Turns returns the permanent log of recorded turns, oldest first.
	Turns() []Turn

	// ApproxTokens estimates the retained size using the chars/4 proxy.
	ApproxTokens() int
}

// Factory builds fresh, empty policies by variant name. The LLM provider
// is only used by the summary variant.
type Factory struct {
	llmProvider llm.LLMProvider
}

func NewFactory(llmProvider llm.LLMProvider) *Factory {
	return &Factory{llmProvider: llmProvider}
}

// New returns an empty policy for the given variant name, or
// InvalidConfiguration for an unrecognized one.
func (f *Factory) New(variant string) (Policy, error) {
	switch variant {
	case VariantBuffer:
		return NewFullHistory(), nil
	case VariantWindow:
		return NewFixedWindow(DefaultWindowSize), nil
	case VariantSummary:
		return NewRollingSummary(f.llmProvider, DefaultTokenBudget), nil
	default:
		return nil, &apperror.InvalidConfigurationError{Variant: variant}
	}
}
