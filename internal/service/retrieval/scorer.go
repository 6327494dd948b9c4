package retrieval

import "strings"

// Scorer ranks a candidate sentence against the query keywords.
// Higher is more relevant.
type Scorer interface {
	Score(sentence string, keywords []string) int
}

// KeywordOverlap counts how many keywords occur as substrings of the sentence.
type KeywordOverlap struct{}

func (KeywordOverlap) Score(sentence string, keywords []string) int {
	lower := strings.ToLower(sentence)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}
