package negotiation

import (
	"regexp"
	"strconv"
)

const (
	MinScore = 0
	MaxScore = 10
)

var scorePattern = regexp.MustCompile(`(?i)\*\*Effectiveness Score:\*\*\s*(\d+)`)

// ParseScore reads the "**Effectiveness Score:** N" line the analysis prompts ask for.
func ParseScore(text string) (int, bool) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return min(max(n, MinScore), MaxScore), true
}
