package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"<b>hi</b>"}, splitHTML("<b>hi</b>", 100))
	})

	t.Run("prefers newlines", func(t *testing.T) {
		text := strings.Repeat("a", 30) + "\n" + strings.Repeat("b", 30)
		chunks := splitHTML(text, 40)
		assert.Equal(t, []string{strings.Repeat("a", 30), strings.Repeat("b", 30)}, chunks)
	})

	t.Run("does not cut a tag", func(t *testing.T) {
		text := strings.Repeat("a", 18) + "<b>bold</b>"
		chunks := splitHTML(text, 20)
		assert.Equal(t, strings.Repeat("a", 18), chunks[0])
		assert.True(t, strings.HasPrefix(chunks[1], "<b>"))
	})

	t.Run("does not cut a rune", func(t *testing.T) {
		text := strings.Repeat("💰", 10)
		for _, c := range splitHTML(text, 9) {
			assert.True(t, utf8.ValidString(c))
			assert.LessOrEqual(t, len(c), 9)
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, splitHTML("", 10))
	})
}
