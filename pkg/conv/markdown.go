package conv

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var tgPolicy = bluemonday.NewPolicy()

func init() {
	// https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToHTML renders CommonMark with the usual extensions. A parser
// keeps state, so a new one is built per call.
func MarkdownToHTML(md []byte) []byte {
	return render(md, nil)
}

// MarkdownToTelegramHTML renders coach replies for Telegram's HTML parse
// mode. Headings become bold lines since Telegram has no heading tags.
func MarkdownToTelegramHTML(md []byte) string {
	return string(tgPolicy.SanitizeBytes(render(md, boldHeadings)))
}

func render(md []byte, hook html.RenderNodeFunc) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          html.CommonFlags | html.HrefTargetBlank,
		RenderNodeHook: hook,
	})
	return markdown.Render(p.Parse(md), renderer)
}

func boldHeadings(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if _, ok := node.(*ast.Heading); !ok {
		return ast.GoToNext, false
	}
	if entering {
		_, _ = io.WriteString(w, "<b>")
	} else {
		_, _ = io.WriteString(w, "</b>\n")
	}
	return ast.GoToNext, true
}
