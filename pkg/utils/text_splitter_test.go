package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short resume", 1000, 200)
	assert.Equal(t, []string{"short resume"}, chunks)
}

func TestSplitTextChunksWithOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := SplitText(text, 100, 20)

	assert.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}

	// Consecutive chunks share the overlap region
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-20:]
		assert.True(t, strings.HasPrefix(chunks[i], prevTail))
	}

	// Every character of the input appears in order
	assert.True(t, strings.HasPrefix(chunks[0], "abcdefghij"))
}

func TestSplitTextSkipsWhitespaceOnlyChunks(t *testing.T) {
	text := "content" + strings.Repeat(" ", 50)
	chunks := SplitText(text, 10, 2)
	for _, c := range chunks {
		assert.NotEqual(t, "", strings.TrimSpace(c))
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Empty(t, SplitText("", 1000, 200))
	assert.Empty(t, SplitText("   \n ", 1000, 200))
}
