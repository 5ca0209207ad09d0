package memory

import (
	"context"
	"fmt"
	"strings"

	"resumegpt-be/pkg/llm"
)

// summarizationPromptTemplate folds old verbatim turns into the running
// summary. Kept close to the classic progressive-summary prompt so the
// model extends rather than rewrites.
const summarizationPromptTemplate = `Progressively summarize the conversation below, adding onto the previous summary and returning a new concise summary.

Current summary:
%s

New lines of conversation:
%s

New summary:`

// RollingSummary maintains a running natural-language summary plus a
// small tail of recent verbatim turns. When the estimated size of the
// retained state exceeds the token budget, the oldest verbatim turns are
// collapsed into the summary with one extra LLM call.
type RollingSummary struct {
	llmProvider llm.LLMProvider
	tokenBudget int

	summary string
	tail    []Turn
	log     []Turn
}

var _ Policy = &RollingSummary{}

func NewRollingSummary(llmProvider llm.LLMProvider, tokenBudget int) *RollingSummary {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	return &RollingSummary{
		llmProvider: llmProvider,
		tokenBudget: tokenBudget,
	}
}

func (s *RollingSummary) Name() string {
	return VariantSummary
}

func (s *RollingSummary) Render() string {
	if s.summary == "" {
		return renderTurns(s.tail)
	}
	if len(s.tail) == 0 {
		return "Summary of earlier conversation: " + s.summary
	}
	return "Summary of earlier conversation: " + s.summary + "\n" + renderTurns(s.tail)
}

// Append records the turn and compacts if the budget is exceeded. The
// turn is recorded before compaction runs, so a compaction failure never
// loses it; the caller may treat the error as a deferred compaction.
func (s *RollingSummary) Append(ctx context.Context, turn Turn) error {
	s.log = append(s.log, turn)
	s.tail = append(s.tail, turn)

	if s.ApproxTokens() <= s.tokenBudget {
		return nil
	}
	return s.compact(ctx)
}

// compact moves the oldest verbatim turns into the summary via a single
// LLM call. The newest turn always stays verbatim.
func (s *RollingSummary) compact(ctx context.Context) error {
	var collapsed []Turn
	for s.ApproxTokens() > s.tokenBudget && len(s.tail) > 1 {
		collapsed = append(collapsed, s.tail[0])
		s.tail = s.tail[1:]
	}
	if len(collapsed) == 0 {
		return nil
	}

	current := s.summary
	if current == "" {
		current = "(none)"
	}
	prompt := fmt.Sprintf(summarizationPromptTemplate, current, renderTurns(collapsed))

	newSummary, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		// Put the turns back so nothing is lost; compaction retries on
		// the next append.
		s.tail = append(collapsed, s.tail...)
		return err
	}

	s.summary = strings.TrimSpace(newSummary)
	return nil
}

func (s *RollingSummary) Clear() {
	s.summary = ""
	s.tail = nil
	s.log = nil
}

func (s *RollingSummary) Turns() []Turn {
	out := make([]Turn, len(s.log))
	copy(out, s.log)
	return out
}

func (s *RollingSummary) ApproxTokens() int {
	return EstimateTokens(s.summary) + estimateTurnTokens(s.tail)
}
