package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/pitchcoach/internal/core"
)

// newCounter skips when the encoding file cannot be loaded, e.g. offline
// without TIKTOKEN_CACHE_DIR.
func newCounter(t *testing.T, model string) *TokenCounter {
	t.Helper()
	tc := NewTokenCounter(model)
	if _, err := tc.Count(""); err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}
	return tc
}

func TestTokenCounter_Count(t *testing.T) {
	tc := newCounter(t, "gpt-4")

	n, err := tc.Count("hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = tc.Count("")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTokenCounter_UnknownModelUsesCL100K(t *testing.T) {
	known := newCounter(t, "gpt-4")
	unknown := newCounter(t, "anthropic/claude-sonnet-4")

	text := "Our budget only stretches to ₹3,60,000 for the pilot."
	want, err := known.Count(text)
	require.NoError(t, err)
	got, err := unknown.Count(text)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokenCounter_CountMessages(t *testing.T) {
	tc := newCounter(t, "gpt-4")

	history := []core.Message{
		{Role: core.RoleSystem, Content: "You are a buyer."},
		{Role: core.RoleUser, Content: "hello world"},
	}

	first, err := tc.Count(history[0].Content)
	require.NoError(t, err)

	n, err := tc.CountMessages(history)
	require.NoError(t, err)
	assert.Equal(t, first+2+2*perMessageOverhead, n)

	n, err = tc.CountMessages(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
