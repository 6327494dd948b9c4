package conv

import (
	"io"

	"github.com/inbucket/html2text"
)

var textOptions = html2text.Options{OmitLinks: true}

// HTMLToText keeps the readable text of a page, without link targets.
func HTMLToText(s string) (string, error) {
	return html2text.FromString(s, textOptions)
}

func HTMLReaderToText(r io.Reader) (string, error) {
	return html2text.FromReader(r, textOptions)
}

// MarkdownToText strips the markup, so headings and list items become plain
// lines of text.
func MarkdownToText(md []byte) (string, error) {
	return HTMLToText(string(MarkdownToHTML(md)))
}
