package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// NoHighlight disables code highlighting.
const NoHighlight = "none"

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Highlighter colors code blocks that the site left as plain text.
// Output uses inline styles so it needs no stylesheet.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns a Highlighter for the named chroma style.
// NoHighlight returns a nil Highlighter, which leaves fragments unchanged.
func NewHighlighter(styleName string) (*Highlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	if styleName == NoHighlight {
		return nil, nil
	}
	if !slices.Contains(styles.Names(), styleName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}, nil
}

// StyleNames lists the registered chroma styles.
func StyleNames() []string {
	return styles.Names()
}

// StyleName returns the chroma style name, or NoHighlight when disabled.
func (h *Highlighter) StyleName() string {
	if h == nil {
		return NoHighlight
	}
	return h.style.Name
}

// Highlight replaces each <pre><code class="language-x"> block whose code
// has no markup yet with chroma output. Blocks in unknown languages are kept.
func (h *Highlighter) Highlight(fragment string) (string, error) {
	if h == nil || !strings.Contains(fragment, "language-") {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing fragment: %w", err)
	}

	changed := false
	doc.Find("pre > code").Each(func(_ int, code *goquery.Selection) {
		if code.Children().Length() > 0 {
			return
		}
		lang := codeLanguage(code.AttrOr("class", ""))
		if lang == "" {
			return
		}
		lexer := lexers.Get(lang)
		if lexer == nil {
			return
		}
		var buf strings.Builder
		it, err := chroma.Coalesce(lexer).Tokenise(nil, code.Text())
		if err != nil {
			return
		}
		if err := h.formatter.Format(&buf, h.style, it); err != nil {
			return
		}
		code.Parent().ReplaceWithHtml(buf.String())
		changed = true
	})
	if !changed {
		return fragment, nil
	}
	return doc.Find("body").Html()
}

// codeLanguage extracts x from a "language-x" or "lang-x" class.
func codeLanguage(class string) string {
	for _, c := range strings.Fields(class) {
		for _, prefix := range []string{"language-", "lang-"} {
			if lang, ok := strings.CutPrefix(c, prefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}
