package pipeline

import (
	"context"
	"fmt"

	"github.com/alnah/go-docs2pdf/internal/assets"
)

// Options configures one composition.
type Options struct {
	Title      string     // document <title>
	CSS        string     // appended after the bundled stylesheet
	Cover      *CoverData // nil or empty: no cover
	TOC        *TOCData   // nil: no table of contents
	Preface    string     // Markdown; empty: no preface
	OpenDetail bool
}

// Composer turns ordered sections into one HTML document.
type Composer struct {
	baseCSS     string
	css         CSSInjector
	cover       CoverInjector
	toc         TOCInjector
	preface     *PrefaceConverter
	highlighter *Highlighter
}

// NewComposer parses the bundle templates and prepares the highlighter.
// Template errors wrap ErrInvalidTemplate.
func NewComposer(bundle *assets.Bundle, highlightStyle string) (*Composer, error) {
	cover, err := NewCoverInjection(bundle.Cover)
	if err != nil {
		return nil, err
	}
	toc, err := NewTOCInjection(bundle.TOC)
	if err != nil {
		return nil, err
	}
	hl, err := NewHighlighter(highlightStyle)
	if err != nil {
		return nil, err
	}
	return &Composer{
		baseCSS:     bundle.CSS,
		css:         &CSSInjection{},
		cover:       cover,
		toc:         toc,
		preface:     NewPrefaceConverter(hl.StyleName()),
		highlighter: hl,
	}, nil
}

// Compose builds the document. Sections keep their order; each is preceded
// by its anchor and, when enabled, listed once in the table of contents.
func (c *Composer) Compose(ctx context.Context, sections []Section, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}

	anchors := make(map[string]string, len(sections))
	for _, s := range sections {
		anchors[s.URL] = s.Anchor
	}

	prepared := make([]Section, len(sections))
	for i, s := range sections {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fragment, err := RewriteLinks(s.HTML, s.URL, s.Anchor, anchors)
		if err != nil {
			return "", fmt.Errorf("section %s: %w", s.URL, err)
		}
		if fragment, err = c.highlighter.Highlight(fragment); err != nil {
			return "", fmt.Errorf("section %s: %w", s.URL, err)
		}
		s.HTML = fragment
		prepared[i] = s
	}

	doc := Assemble(opts.Title, prepared)

	css := c.baseCSS
	if opts.CSS != "" {
		css += "\n" + opts.CSS
	}
	doc = c.css.InjectCSS(ctx, doc, css)

	doc, err := c.cover.InjectCover(ctx, doc, opts.Cover)
	if err != nil {
		return "", err
	}
	if doc, err = c.toc.InjectTOC(ctx, doc, prepared, opts.TOC); err != nil {
		return "", err
	}

	if opts.Preface != "" {
		preface, err := c.preface.ToHTML(ctx, opts.Preface)
		if err != nil {
			return "", err
		}
		doc = InjectPreface(doc, preface)
	}

	if opts.OpenDetail {
		if doc, err = OpenDetails(doc); err != nil {
			return "", err
		}
	}
	return doc, ctx.Err()
}
