package retrieval

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/pitchcoach/internal/core"
)

const (
	// Fallback is returned when nothing in the corpus matches the query.
	Fallback = "General sales best practices apply."

	minKeywordLen  = 4
	minSentenceLen = 20
	minScore       = 2
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Corpus is the read side of the corpus index.
type Corpus interface {
	Documents() []core.CorpusDocument
}

type Engine struct {
	corpus Corpus
	scorer Scorer
}

func NewEngine(corpus Corpus, scorer Scorer) *Engine {
	if scorer == nil {
		scorer = KeywordOverlap{}
	}
	return &Engine{corpus: corpus, scorer: scorer}
}

// Retrieve builds grounding text for query, at most one sentence past maxChars.
// It never returns an empty string.
func (e *Engine) Retrieve(query string, maxChars int) string {
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return Fallback
	}

	hits := e.rank(keywords)
	if len(hits) == 0 {
		return Fallback
	}

	var sb strings.Builder
	for _, hit := range hits {
		if sb.Len()+len(hit.Text) > maxChars {
			break
		}
		sb.WriteString(hit.Text)
		sb.WriteString(". ")
	}

	if sb.Len() == 0 {
		return Fallback
	}
	return sb.String()
}

func (e *Engine) rank(keywords []string) []core.RelevanceHit {
	var hits []core.RelevanceHit
	for _, doc := range e.corpus.Documents() {
		for _, chunk := range doc.Chunks {
			for _, s := range sentenceBoundary.Split(chunk, -1) {
				s = strings.TrimSpace(s)
				if utf8.RuneCountInString(s) < minSentenceLen {
					continue
				}
				if score := e.scorer.Score(s, keywords); score >= minScore {
					hits = append(hits, core.RelevanceHit{Text: s, Score: score})
				}
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// Keywords lowercases the query and keeps distinct words longer than three characters.
func Keywords(query string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(w) < minKeywordLen {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
