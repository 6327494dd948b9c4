package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "Take your time!", want: "Take your time!\n"},
		{
			name: "score line",
			in:   "**Effectiveness Score:** 7/10",
			want: "<strong>Effectiveness Score:</strong> 7/10\n",
		},
		{name: "italic hint", in: "_Name your price._", want: "<em>Name your price.</em>\n"},
		{name: "heading becomes bold", in: "## Deal Summary", want: "<b>Deal Summary</b>\n"},
		{name: "strikethrough", in: "~~$80,000~~", want: "<del>$80,000</del>\n"},
		{name: "inline code", in: "`/materials delete <name>`", want: "<code>/materials delete &lt;name&gt;</code>\n"},
		{
			name: "code block keeps language class",
			in:   "```yaml\nproduct: GenAI\n```",
			want: "<pre><code class=\"language-yaml\">product: GenAI\n</code></pre>\n",
		},
		{name: "blockquote", in: "> I need to think", want: "<blockquote>\nI need to think\n</blockquote>\n"},
		{name: "link keeps only href", in: "[guide](https://example.com)", want: "<a href=\"https://example.com\">guide</a>\n"},
		{name: "script removed", in: "<script>alert('x')</script>", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToTelegramHTML([]byte(tt.in)))
		})
	}
}

func TestMarkdownToText(t *testing.T) {
	got, err := MarkdownToText([]byte("# Objections\n\nAsk **why** before you answer.\n\n- listen\n- [confirm](https://example.com)\n"))
	require.NoError(t, err)

	assert.Contains(t, got, "Objections")
	assert.Contains(t, got, "before you answer.")
	assert.Contains(t, got, "confirm")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "https://example.com")
}

func TestHTMLToText(t *testing.T) {
	got, err := HTMLToText("<html><body><h2>Pricing</h2><p>Anchor <b>high</b>, concede slowly.</p></body></html>")
	require.NoError(t, err)

	assert.Contains(t, got, "Pricing")
	assert.Contains(t, got, "concede slowly.")
	assert.NotContains(t, got, "<")
}
