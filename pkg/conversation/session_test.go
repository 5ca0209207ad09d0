package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/pkg/llm"
	"resumegpt-be/pkg/memory"
	"resumegpt-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore returns canned fragments and records requested queries.
type fakeStore struct {
	fragments []rag.Fragment
	err       error
	queries   []string
	lastK     int
}

func (f *fakeStore) Retrieve(ctx context.Context, query string, k int) ([]rag.Fragment, error) {
	f.queries = append(f.queries, query)
	f.lastK = k
	if f.err != nil {
		return nil, &apperror.StoreUnavailableError{Err: f.err}
	}
	if len(f.fragments) > k {
		return f.fragments[:k], nil
	}
	return f.fragments, nil
}

// capturingLLM echoes a numbered answer and keeps every prompt it saw.
type capturingLLM struct {
	err     error
	prompts []string
}

func (c *capturingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (c *capturingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.prompts = append(c.prompts, prompt)
	return fmt.Sprintf("answer %d", len(c.prompts)), nil
}

func newTestSession(t *testing.T, store rag.FragmentStore, provider llm.LLMProvider, variant string) *Session {
	t.Helper()
	s, err := NewSession(store, provider, variant)
	require.NoError(t, err)
	return s
}

func someFragments(n int) []rag.Fragment {
	out := make([]rag.Fragment, n)
	for i := range out {
		out[i] = rag.Fragment{
			Text:     fmt.Sprintf("fragment %d", i),
			SourceID: fmt.Sprintf("doc#%d", i),
		}
	}
	return out
}

func TestAskAssignsContiguousOrdinals(t *testing.T) {
	store := &fakeStore{fragments: someFragments(2)}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		res, err := s.Ask(ctx, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		assert.Equal(t, i, res.TurnCount)
	}

	summary := s.Summary()
	assert.Equal(t, 4, summary.TurnCount)
	require.Len(t, summary.RecentTurns, 2)
	assert.Equal(t, 3, summary.RecentTurns[0].Ordinal)
	assert.Equal(t, 4, summary.RecentTurns[1].Ordinal)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	store := &fakeStore{fragments: someFragments(1)}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)
	ctx := context.Background()

	for _, q := range []string{"", "   ", "\n\t "} {
		_, err := s.Ask(ctx, q)
		assert.ErrorIs(t, err, apperror.ErrEmptyQuestion)
	}

	// Nothing retrieved, nothing recorded
	assert.Empty(t, store.queries)
	assert.Zero(t, s.Summary().TurnCount)
}

func TestAskGenerationFailureRecordsNoTurn(t *testing.T) {
	store := &fakeStore{fragments: someFragments(1)}
	provider := &capturingLLM{}
	s := newTestSession(t, store, provider, memory.VariantBuffer)
	ctx := context.Background()

	_, err := s.Ask(ctx, "first question")
	require.NoError(t, err)

	provider.err = errors.New("model offline")
	_, err = s.Ask(ctx, "second question")
	require.Error(t, err)

	var genFailed *apperror.GenerationFailedError
	assert.True(t, errors.As(err, &genFailed))
	assert.Equal(t, 1, s.Summary().TurnCount)

	// Recovery picks up the next ordinal
	provider.err = nil
	res, err := s.Ask(ctx, "third question")
	require.NoError(t, err)
	assert.Equal(t, 2, res.TurnCount)
}

func TestAskPropagatesStoreErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)

	_, err := s.Ask(context.Background(), "any question")
	require.Error(t, err)

	var storeErr *apperror.StoreUnavailableError
	assert.True(t, errors.As(err, &storeErr))
	assert.Zero(t, s.Summary().TurnCount)
}

func TestAskBoundsRetrievedFragments(t *testing.T) {
	store := &fakeStore{fragments: someFragments(10)}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)

	res, err := s.Ask(context.Background(), "a question")
	require.NoError(t, err)

	assert.Equal(t, DefaultTopK, store.lastK)
	assert.Len(t, res.FragmentsUsed, DefaultTopK)
}

func TestAskPromptCarriesEarlierTurns(t *testing.T) {
	store := &fakeStore{fragments: someFragments(1)}
	provider := &capturingLLM{}
	s := newTestSession(t, store, provider, memory.VariantBuffer)
	ctx := context.Background()

	_, err := s.Ask(ctx, "what is the candidate's name?")
	require.NoError(t, err)
	_, err = s.Ask(ctx, "where do they work?")
	require.NoError(t, err)

	require.Len(t, provider.prompts, 2)
	second := provider.prompts[1]
	assert.Contains(t, second, "Human: what is the candidate's name?")
	assert.Contains(t, second, "Assistant: answer 1")
	assert.Contains(t, second, "Current question: where do they work?")
	assert.Contains(t, second, "fragment 0")
}

func TestSwitchMemoryPolicyIsDestructive(t *testing.T) {
	store := &fakeStore{fragments: someFragments(1)}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)
	ctx := context.Background()

	_, err := s.Ask(ctx, "question one")
	require.NoError(t, err)
	require.Equal(t, 1, s.Summary().TurnCount)

	require.NoError(t, s.SwitchMemoryPolicy(memory.VariantWindow))
	assert.Equal(t, memory.VariantWindow, s.Variant())
	assert.Zero(t, s.Summary().TurnCount)

	// Ordinals restart from 1 after the switch
	res, err := s.Ask(ctx, "question two")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TurnCount)
}

func TestSwitchMemoryPolicyUnknownVariantKeepsState(t *testing.T) {
	store := &fakeStore{fragments: someFragments(1)}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)
	ctx := context.Background()

	_, err := s.Ask(ctx, "question one")
	require.NoError(t, err)

	err = s.SwitchMemoryPolicy("holographic")
	require.Error(t, err)

	var invalidConfig *apperror.InvalidConfigurationError
	assert.True(t, errors.As(err, &invalidConfig))
	assert.Equal(t, memory.VariantBuffer, s.Variant())
	assert.Equal(t, 1, s.Summary().TurnCount)
}

func TestClearMemoryResetsTurns(t *testing.T) {
	store := &fakeStore{fragments: someFragments(1)}
	s := newTestSession(t, store, &capturingLLM{}, memory.VariantBuffer)
	ctx := context.Background()

	_, err := s.Ask(ctx, "question one")
	require.NoError(t, err)
	_, err = s.Ask(ctx, "question two")
	require.NoError(t, err)

	s.ClearMemory()
	summary := s.Summary()
	assert.Zero(t, summary.TurnCount)
	assert.Empty(t, summary.RecentTurns)
	assert.Zero(t, summary.ApproxSizeEstimate)

	// Clearing twice is fine
	s.ClearMemory()
	assert.Zero(t, s.Summary().TurnCount)

	// Ordinals restart from 1
	res, err := s.Ask(ctx, "question three")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TurnCount)
}

func TestNewSessionRejectsUnknownVariant(t *testing.T) {
	_, err := NewSession(&fakeStore{}, &capturingLLM{}, "holographic")
	require.Error(t, err)

	var invalidConfig *apperror.InvalidConfigurationError
	assert.True(t, errors.As(err, &invalidConfig))
}
