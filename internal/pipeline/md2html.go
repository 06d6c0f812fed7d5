package pipeline

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// PrefaceConverter renders a Markdown preface page.
type PrefaceConverter struct {
	md goldmark.Markdown
}

// NewPrefaceConverter returns a converter with GFM, footnotes and code
// highlighting in the given chroma style (NoHighlight disables it).
func NewPrefaceConverter(highlightStyle string) *PrefaceConverter {
	extensions := []goldmark.Extender{extension.GFM, extension.Footnote}
	if highlightStyle != NoHighlight {
		if highlightStyle == "" {
			highlightStyle = DefaultHighlightStyle
		}
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(highlightStyle),
			highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	return &PrefaceConverter{md: md}
}

// ToHTML converts Markdown into a preface section.
// goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (c *PrefaceConverter) ToHTML(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(preprocessMarkdown(markdown)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: `<section class="docs2pdf-preface">` + restoreMarks(buf.String()) + `</section>`}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
