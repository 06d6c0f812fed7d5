package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a rendered page that can be queried by CSS selector.
// Selectors passed to Find must be valid; see ValidateSelector.
type Document interface {
	// URL returns the logical URL of the page, the one used for dedup and
	// for resolving relative links.
	URL() string
	// Title returns the text of the <title> element.
	Title() string
	// Meta returns the content attribute of <meta name="name">.
	Meta(name string) string
	// Find returns the elements matching selector.
	Find(selector string) *goquery.Selection
}

// Renderer opens pages in a browser session. Implementations drive a single
// tab and must not be called concurrently.
type Renderer interface {
	Open(ctx context.Context, url string) (Document, error)
}

// HTMLDocument is a Document backed by an HTML snapshot.
type HTMLDocument struct {
	url string
	doc *goquery.Document
}

// Compile-time interface check.
var _ Document = (*HTMLDocument)(nil)

// NewHTMLDocument parses content as the rendered HTML of pageURL.
func NewHTMLDocument(pageURL, content string) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return &HTMLDocument{url: pageURL, doc: doc}, nil
}

func (d *HTMLDocument) URL() string {
	return d.url
}

func (d *HTMLDocument) Title() string {
	return strings.TrimSpace(d.doc.Find("head > title").First().Text())
}

func (d *HTMLDocument) Meta(name string) string {
	var content string
	d.doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr("name", ""), name) {
			return true
		}
		content = s.AttrOr("content", "")
		return false
	})
	return content
}

func (d *HTMLDocument) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// First returns the first element matching selector.
// Returns ErrSelectorNotFound when nothing matches.
func First(doc Document, selector string) (*goquery.Selection, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %q on %s", ErrSelectorNotFound, selector, doc.URL())
	}
	return sel, nil
}
