package ingest

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("text", func(t *testing.T) {
		in, err := LoadFile(writeFile(t, dir, "notes.txt", "Ask open questions first."))
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", in.Name)
		assert.Equal(t, "Ask open questions first.", in.Text)
	})

	t.Run("markdown", func(t *testing.T) {
		in, err := LoadFile(writeFile(t, dir, "guide.md", "# Discovery\n\nAsk **open** questions first.\n"))
		require.NoError(t, err)
		assert.Contains(t, in.Text, "Discovery")
		assert.Contains(t, in.Text, "questions first.")
		assert.NotContains(t, in.Text, "<")
		assert.NotContains(t, in.Text, "#")
	})

	t.Run("html", func(t *testing.T) {
		in, err := LoadFile(writeFile(t, dir, "page.HTML", "<html><body><p>Anchor the price high.</p><script>x()</script></body></html>"))
		require.NoError(t, err)
		assert.Contains(t, in.Text, "Anchor the price high.")
		assert.NotContains(t, in.Text, "<p>")
	})

	t.Run("pdf", func(t *testing.T) {
		in, err := LoadFile(filepath.Join("testdata", "pricing.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "pricing.pdf", in.Name)
		assert.Contains(t, in.Text, "Pricing playbook for enterprise training deals.")
		assert.Contains(t, in.Text, "Always anchor high and defend value with ROI.")
	})

	t.Run("broken pdf", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, dir, "broken.pdf", "%PDF"))
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, dir, "deck.pptx", "PK"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.txt"))
		assert.Error(t, err)
	})
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"spin.txt", "Challenger Sale.md", "example.com-pricing"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", "  ", "../etc/passwd", "a/b.txt", `a\b.txt`, "..", "x..y"} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}

func TestNameFromURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com":                   "example.com",
		"https://example.com/":                  "example.com",
		"https://example.com/blog/spin-selling": "example.com-spin-selling",
		"http://example.com:8080/guide/":        "example.com-guide",
	}
	for raw, want := range tests {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		got := NameFromURL(u)
		assert.Equal(t, want, got, raw)
		assert.NoError(t, ValidateName(got))
	}
}
