package corpus

import (
	"context"
	"strings"
	"testing"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{name: "empty", text: "", size: 4, want: nil},
		{name: "shorter than chunk", text: "abc", size: 4, want: []string{"abc"}},
		{name: "exact multiple", text: "abcdefgh", size: 4, want: []string{"abcd", "efgh"}},
		{name: "remainder", text: "abcdefghij", size: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "ignores sentence boundaries", text: "Hi. Bye.", size: 3, want: []string{"Hi.", " By", "e."}},
		{name: "counts characters not bytes", text: "привет", size: 4, want: []string{"прив", "ет"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkText(tt.text, tt.size))
		})
	}
}

func TestIndex_Ingest(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(10)
	assert.True(t, idx.IsEmpty())

	docs, err := idx.Ingest(ctx, []core.DocumentInput{
		{Name: "spin-selling.txt", Text: strings.Repeat("a", 25)},
		{Name: "blank.txt", Text: "   \n"},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "spin-selling.txt", docs[0].Name)
	assert.Len(t, docs[0].Chunks, 3)
	assert.NotEmpty(t, docs[0].ID)
	assert.False(t, idx.IsEmpty())
}

func TestIndex_IngestReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(0)

	_, err := idx.Ingest(ctx, []core.DocumentInput{{Name: "old.txt", Text: "old text"}})
	require.NoError(t, err)

	_, err = idx.Ingest(ctx, []core.DocumentInput{{Name: "new.txt", Text: "new text"}})
	require.NoError(t, err)

	docs := idx.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "new.txt", docs[0].Name)
}

func TestIndex_EmptyIngestKeepsPreviousCorpus(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(0)

	_, err := idx.Ingest(ctx, []core.DocumentInput{{Name: "keep.txt", Text: "keep me"}})
	require.NoError(t, err)

	_, err = idx.Ingest(ctx, nil)
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)

	_, err = idx.Ingest(ctx, []core.DocumentInput{{Name: "blank.txt", Text: ""}})
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)

	require.Len(t, idx.Documents(), 1)
	assert.Equal(t, "keep.txt", idx.Documents()[0].Name)
}

func TestIndex_Clear(t *testing.T) {
	idx := NewIndex(0)
	_, err := idx.Ingest(context.Background(), []core.DocumentInput{{Name: "a.txt", Text: "text"}})
	require.NoError(t, err)

	idx.Clear()
	assert.True(t, idx.IsEmpty())
}
