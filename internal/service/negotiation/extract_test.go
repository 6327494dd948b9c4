package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantFound bool
		wantRaw   string
		wantValue float64
	}{
		{
			name:      "currency with thousands separator",
			text:      "We propose $45,000 for the program",
			wantFound: true,
			wantRaw:   "$45,000",
			wantValue: 45000,
		},
		{
			name:      "plain digits",
			text:      "Let's do it at 45000, sounds good",
			wantFound: true,
			wantRaw:   "45000",
			wantValue: 45000,
		},
		{
			name:      "leading punctuation is not a number",
			text:      "Agreed, 55000, let's finalize",
			wantFound: true,
			wantRaw:   "55000",
			wantValue: 55000,
		},
		{
			name:      "decimal fraction and rate suffix",
			text:      "It comes to $1,250.50 per seat",
			wantFound: true,
			wantRaw:   "$1,250.50 per",
			wantValue: 1250.50,
		},
		{
			name:      "slash rate suffix",
			text:      "We charge 900/ learner",
			wantFound: true,
			wantRaw:   "900/",
			wantValue: 900,
		},
		{
			name:      "only the first number counts",
			text:      "we were at 50000 but could do 45000",
			wantFound: true,
			wantRaw:   "50000",
			wantValue: 50000,
		},
		{
			name:      "lakh grouping",
			text:      "we can do ₹4,50,000 for the whole team",
			wantFound: true,
			wantRaw:   "4,50,000",
			wantValue: 450000,
		},
		{
			name:      "irregular grouping",
			text:      "Budget is 1,5000 this quarter",
			wantFound: true,
			wantRaw:   "1,5000",
			wantValue: 15000,
		},
		{
			name:      "trailing comma is not part of the price",
			text:      "Agreed at ₹4,50,000, let's move forward",
			wantFound: true,
			wantRaw:   "4,50,000",
			wantValue: 450000,
		},
		{
			name:      "spelled out numbers are not detected",
			text:      "roughly forty five thousand",
			wantFound: false,
		},
		{
			name:      "empty text",
			text:      "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.wantFound, got.Found)
			if !tt.wantFound {
				assert.Nil(t, got.Value)
				assert.Empty(t, got.RawText)
				return
			}
			assert.Equal(t, tt.wantRaw, got.RawText)
			require.NotNil(t, got.Value)
			assert.InDelta(t, tt.wantValue, *got.Value, 0.001)
		})
	}
}

func TestParseValue(t *testing.T) {
	v, ok := ParseValue("$72,500")
	require.True(t, ok)
	assert.Equal(t, 72500.0, v)

	_, ok = ParseValue("to be determined")
	assert.False(t, ok)
}

func TestContainsAcceptanceSignal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Let's do it at 45000, sounds good", true},
		{"AGREED at 75000", true},
		{"Great, let's move forward with that.", true},
		{"We'll be sharing the documents tomorrow", true},
		{"I can't go lower than 80000", false},
		// Substring matching is deliberately naive.
		{"I disagreed with your last number", true},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsAcceptanceSignal(tt.text), tt.text)
	}
}

func TestContainsReadinessSignal(t *testing.T) {
	assert.True(t, ContainsReadinessSignal("Yes, let's go"))
	assert.True(t, ContainsReadinessSignal("I'm READY"))
	assert.True(t, ContainsReadinessSignal("please proceed"))
	assert.False(t, ContainsReadinessSignal("not now, maybe later"))
}
