package pipeline

import (
	"regexp"
	"strings"
)

// Private Use Area runes stand in for <mark> while goldmark runs, so the
// converter does not need raw HTML enabled.
const (
	markOpen  = "\uE000"
	markClose = "\uE001"
)

var (
	lineEndings = regexp.MustCompile(`\r\n?`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	markSyntax  = regexp.MustCompile(`==(.*?)==`)
)

// preprocessMarkdown normalizes line endings, collapses runs of blank
// lines and turns ==text== into mark placeholders.
func preprocessMarkdown(content string) string {
	content = lineEndings.ReplaceAllString(content, "\n")
	content = markSyntax.ReplaceAllString(content, markOpen+"$1"+markClose)
	return blankRuns.ReplaceAllString(content, "\n\n")
}

// restoreMarks turns mark placeholders into <mark> elements.
func restoreMarks(content string) string {
	return strings.NewReplacer(markOpen, "<mark>", markClose, "</mark>").Replace(content)
}
