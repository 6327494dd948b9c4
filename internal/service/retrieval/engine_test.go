package retrieval

import (
	"strings"
	"testing"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCorpus []core.CorpusDocument

func (c staticCorpus) Documents() []core.CorpusDocument { return c }

func corpusOf(texts ...string) staticCorpus {
	var docs staticCorpus
	for i, text := range texts {
		docs = append(docs, core.CorpusDocument{
			ID:       string(rune('a' + i)),
			Name:     "book.txt",
			FullText: text,
			Chunks:   []string{text},
		})
	}
	return docs
}

const book = "Always open the pitch with a strong value proposition for the buyer. " +
	"Short one. " +
	"Handle every objection by restating the customer concern first! " +
	"A pitch without a hook loses the buyer in seconds? " +
	"Weather today is unrelated to selling anything at all."

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "drops short words", query: "the pitch is a hook", want: []string{"pitch", "hook"}},
		{name: "lowercases", query: "Value PROPOSITION", want: []string{"value", "proposition"}},
		{name: "distinct", query: "pitch pitch Pitch", want: []string{"pitch"}},
		{name: "empty", query: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords(tt.query))
		})
	}
}

func TestKeywordOverlap_Score(t *testing.T) {
	s := KeywordOverlap{}
	assert.Equal(t, 2, s.Score("Open the Pitch with VALUE", []string{"pitch", "value", "buyer"}))
	assert.Equal(t, 0, s.Score("nothing relevant", []string{"pitch"}))
}

func TestEngine_RetrieveRanksByScore(t *testing.T) {
	e := NewEngine(corpusOf(book), nil)

	got := e.Retrieve("pitch value proposition buyer hook", 1000)

	first := "Always open the pitch with a strong value proposition for the buyer. "
	second := "A pitch without a hook loses the buyer in seconds. "
	assert.Equal(t, first+second, got)
	assert.NotContains(t, got, "Weather")
	assert.NotContains(t, got, "objection")
}

func TestEngine_RetrieveStableTies(t *testing.T) {
	e := NewEngine(corpusOf(
		"The pitch should mention value early on. Later the pitch adds value again here.",
	), nil)

	got := e.Retrieve("pitch value", 1000)
	assert.Equal(t, "The pitch should mention value early on. Later the pitch adds value again here. ", got)
}

func TestEngine_SentenceFloorCountsRunes(t *testing.T) {
	// The first sentence is 19 runes but 35 bytes.
	e := NewEngine(corpusOf("Цена и скидка важны. Цена и скидка важны для клиента."), nil)

	got := e.Retrieve("цена скидка", 1000)
	assert.Equal(t, "Цена и скидка важны для клиента. ", got)
}

func TestEngine_RetrieveBoundsLength(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("Every pitch needs a clear value statement for the buyer. ")
	}
	e := NewEngine(corpusOf(sb.String()), nil)

	const maxChars = 200
	got := e.Retrieve("pitch value buyer", maxChars)

	longest := len("Every pitch needs a clear value statement for the buyer")
	assert.LessOrEqual(t, len(got), maxChars+longest)
	assert.NotEmpty(t, got)
}

func TestEngine_RetrieveFallback(t *testing.T) {
	tests := []struct {
		name     string
		corpus   staticCorpus
		query    string
		maxChars int
	}{
		{name: "empty corpus", corpus: nil, query: "pitch value", maxChars: 100},
		{name: "no long keywords", corpus: corpusOf(book), query: "a an the", maxChars: 100},
		{name: "single keyword match is noise", corpus: corpusOf(book), query: "weather", maxChars: 100},
		{name: "first hit overflows", corpus: corpusOf(book), query: "pitch value", maxChars: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.corpus, nil)
			assert.Equal(t, Fallback, e.Retrieve(tt.query, tt.maxChars))
		})
	}
}

type lengthScorer struct{}

func (lengthScorer) Score(sentence string, _ []string) int { return len(sentence) }

func TestEngine_CustomScorer(t *testing.T) {
	e := NewEngine(corpusOf(book), lengthScorer{})

	got := e.Retrieve("anything", 80)
	require.NotEqual(t, Fallback, got)
	assert.True(t, strings.HasPrefix(got, "Always open the pitch"))
}
