package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned summary and records the prompts it saw.
type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func turnN(n int) Turn {
	return Turn{
		Question: fmt.Sprintf("question %d", n),
		Answer:   fmt.Sprintf("answer %d", n),
		Ordinal:  n,
	}
}

func TestFactoryUnknownVariant(t *testing.T) {
	f := NewFactory(&fakeLLM{})

	_, err := f.New("graph")
	require.Error(t, err)

	var invalidConfig *apperror.InvalidConfigurationError
	assert.True(t, errors.As(err, &invalidConfig))
	assert.Contains(t, err.Error(), "graph")
}

func TestFactoryKnownVariants(t *testing.T) {
	f := NewFactory(&fakeLLM{})

	for _, variant := range []string{VariantBuffer, VariantWindow, VariantSummary} {
		p, err := f.New(variant)
		require.NoError(t, err)
		assert.Equal(t, variant, p.Name())
		assert.Empty(t, p.Turns())
	}
}

func TestFullHistoryRendersAllTurns(t *testing.T) {
	p := NewFullHistory()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		require.NoError(t, p.Append(ctx, turnN(i)))
	}

	rendered := p.Render()
	for i := 1; i <= 7; i++ {
		assert.Contains(t, rendered, fmt.Sprintf("question %d", i))
		assert.Contains(t, rendered, fmt.Sprintf("answer %d", i))
	}
	assert.Len(t, p.Turns(), 7)
}

func TestFixedWindowRendersOnlyRecentTurns(t *testing.T) {
	p := NewFixedWindow(3)
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		require.NoError(t, p.Append(ctx, turnN(i)))
	}

	rendered := p.Render()
	assert.NotContains(t, rendered, "question 5")
	assert.Contains(t, rendered, "question 6")
	assert.Contains(t, rendered, "question 7")
	assert.Contains(t, rendered, "question 8")

	// The full log is still retained even when rendering is windowed
	assert.Len(t, p.Turns(), 8)
}

func TestFixedWindowDefaultSize(t *testing.T) {
	p := NewFixedWindow(0)
	ctx := context.Background()

	for i := 1; i <= DefaultWindowSize+2; i++ {
		require.NoError(t, p.Append(ctx, turnN(i)))
	}

	rendered := p.Render()
	assert.NotContains(t, rendered, "question 1")
	assert.NotContains(t, rendered, "question 2")
	assert.Contains(t, rendered, "question 3")
}

func TestClearResetsState(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(&fakeLLM{response: "a summary"})

	for _, variant := range []string{VariantBuffer, VariantWindow, VariantSummary} {
		p, err := f.New(variant)
		require.NoError(t, err)

		require.NoError(t, p.Append(ctx, turnN(1)))
		require.NoError(t, p.Append(ctx, turnN(2)))

		p.Clear()
		assert.Empty(t, p.Turns(), variant)
		assert.Equal(t, "", strings.TrimSpace(p.Render()), variant)
		assert.Zero(t, p.ApproxTokens(), variant)

		// Clear is idempotent
		p.Clear()
		assert.Empty(t, p.Turns(), variant)
	}
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}
