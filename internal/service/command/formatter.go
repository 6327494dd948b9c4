package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter renders command replies as Markdown for the chat
// transports.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("⚙️ **%s**\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

// Score draws a ten step bar, e.g. "7/10 ▰▰▰▰▰▰▰▱▱▱".
func (f *ResponseFormatter) Score(score, outOf int) string {
	if outOf <= 0 {
		return fmt.Sprintf("%d", score)
	}
	filled := min(max(score, 0), outOf)
	return fmt.Sprintf("%d/%d %s%s", score, outOf, strings.Repeat("▰", filled), strings.Repeat("▱", outOf-filled))
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", command)
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("› " + item + "\n")
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

func (f *ResponseFormatter) Section(emoji, title, content string) string {
	return fmt.Sprintf("%s **%s**\n%s", emoji, title, content)
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
