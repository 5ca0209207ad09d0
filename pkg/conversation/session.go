// Package conversation orchestrates one question-answering dialogue over
// a single document: per-turn retrieval, memory rendering, prompt
// assembly, generation, and turn bookkeeping.
package conversation

import (
	"context"
	"strings"
	"sync"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/pkg/llm"
	"resumegpt-be/pkg/memory"
	"resumegpt-be/pkg/rag"
	"resumegpt-be/pkg/rag/prompt"
)

// DefaultTopK is the number of fragments retrieved per turn.
const DefaultTopK = 4

// Logger is the subset of the application logger the session needs.
type Logger interface {
	Warn(module, message string, details map[string]interface{})
}

type noopLogger struct{}

func (noopLogger) Warn(string, string, map[string]interface{}) {}

// Result is the outcome of one successful Ask call.
type Result struct {
	Answer        string
	FragmentsUsed []rag.Fragment
	TurnCount     int
}

// MemorySummary is a read-only snapshot of the session's memory state.
// ApproxSizeEstimate uses the chars/4 proxy and is never exact.
type MemorySummary struct {
	TurnCount          int
	Variant            string
	RecentTurns        []memory.Turn
	ApproxSizeEstimate int
}

// Session is one logical conversation. It owns its memory policy and is
// safe for concurrent use: calls are serialized by a per-session mutex
// so turn ordinals stay contiguous.
type Session struct {
	mu sync.Mutex

	store       rag.FragmentStore
	llmProvider llm.LLMProvider
	factory     *memory.Factory
	policy      memory.Policy
	topK        int
	logger      Logger
}

// Option configures a Session at construction time.
type Option func(*Session)

func WithTopK(k int) Option {
	return func(s *Session) {
		if k > 0 {
			s.topK = k
		}
	}
}

func WithLogger(logger Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session with a fresh, empty memory policy of the
// named variant. An unknown variant name fails with InvalidConfiguration.
func NewSession(store rag.FragmentStore, llmProvider llm.LLMProvider, variant string, options ...Option) (*Session, error) {
	factory := memory.NewFactory(llmProvider)
	policy, err := factory.New(variant)
	if err != nil {
		return nil, err
	}

	s := &Session{
		store:       store,
		llmProvider: llmProvider,
		factory:     factory,
		policy:      policy,
		topK:        DefaultTopK,
		logger:      noopLogger{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Ask answers a question using retrieved fragments and the rendered
// memory, then records the turn. Exactly one turn is appended per
// successful call; on any failure no turn is recorded.
func (s *Session) Ask(ctx context.Context, question string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperror.ErrEmptyQuestion
	}

	fragments, err := s.store.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	rendered := s.policy.Render()
	fullPrompt := prompt.NewBuilder(rendered, fragments, question).Build()

	answer, err := s.llmProvider.Generate(ctx, fullPrompt)
	if err != nil {
		return nil, &apperror.GenerationFailedError{Err: err}
	}

	turn := memory.Turn{
		Question: question,
		Answer:   answer,
		Ordinal:  len(s.policy.Turns()) + 1,
	}
	if err := s.policy.Append(ctx, turn); err != nil {
		// The turn is already retained verbatim; compaction runs again on
		// the next append.
		s.logger.Warn("conversation", "memory compaction failed, keeping turns verbatim", map[string]interface{}{
			"error":   err.Error(),
			"ordinal": turn.Ordinal,
		})
	}

	return &Result{
		Answer:        answer,
		FragmentsUsed: fragments,
		TurnCount:     len(s.policy.Turns()),
	}, nil
}

// ClearMemory drops all recorded turns. Idempotent.
func (s *Session) ClearMemory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy.Clear()
}

// SwitchMemoryPolicy replaces the policy with a fresh, empty instance of
// the named variant. The switch is destructive: prior history is not
// carried over. An unknown name fails with InvalidConfiguration and
// leaves the current policy and its state unchanged.
func (s *Session) SwitchMemoryPolicy(variant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy, err := s.factory.New(variant)
	if err != nil {
		return err
	}
	s.policy = policy
	return nil
}

// Variant returns the current memory variant name.
func (s *Session) Variant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Name()
}

// Summary reports the memory state without side effects.
func (s *Session) Summary() MemorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.policy.Turns()
	recent := turns
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}

	return MemorySummary{
		TurnCount:          len(turns),
		Variant:            s.policy.Name(),
		RecentTurns:        recent,
		ApproxSizeEstimate: s.policy.ApproxTokens(),
	}
}
