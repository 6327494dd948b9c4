package negotiation

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePattern matches an optional currency sign, digits with commas of any
// grouping (45,000 or the lakh style 4,50,000), an optional fraction and an
// optional rate suffix. A comma must sit between digits, so "55000, sure"
// keeps the comma out of the raw text.
// Only the first match in a text is used: "we were at 50000 but could do
// 45000" yields 50000.
var pricePattern = regexp.MustCompile(`(?i)\$?\d+(?:,\d+)*(?:\.\d+)?(?:\s*(?:per\b|/))?`)

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// Extraction is the tagged result of a price scan.
type Extraction struct {
	Found   bool
	RawText string
	Value   *float64
}

// Extract returns the first price-looking token of text. Found is false when
// there is no digit token; Value stays nil when the token does not parse.
func Extract(text string) Extraction {
	raw := pricePattern.FindString(text)
	if raw == "" {
		return Extraction{}
	}

	ext := Extraction{Found: true, RawText: raw}
	if v, ok := ParseValue(raw); ok {
		ext.Value = &v
	}
	return ext
}

// ParseValue strips everything but digits and dots and parses the rest.
func ParseValue(raw string) (float64, bool) {
	digits := nonNumeric.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var acceptancePhrases = []string{
	"let's do it",
	"you've got a deal",
	"deal accepted",
	"agreed at that price",
	"i accept your final offer",
	"ok lets do",
	"agreed",
	"let's do the deal",
	"close the deal",
	"lets close",
	"sharing the documents",
	"share the documents",
	"send the documents",
	"we will be sharing",
	"we'll be sharing",
	"let's finalize",
	"let's move forward",
	"sounds good",
}

var readinessPhrases = []string{"yes", "ready", "proceed"}

// ContainsAcceptanceSignal reports whether the salesperson verbally agreed to
// close. The vocabulary is fixed product copy.
func ContainsAcceptanceSignal(text string) bool {
	return containsAny(text, acceptancePhrases)
}

// ContainsReadinessSignal reports whether the user agreed to start negotiating.
func ContainsReadinessSignal(text string) bool {
	return containsAny(text, readinessPhrases)
}

func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
