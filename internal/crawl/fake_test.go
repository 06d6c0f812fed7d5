package crawl

import (
	"context"
	"errors"
	"testing"
)

// fakeRenderer serves in-memory pages keyed by normalized URL.
type fakeRenderer struct {
	pages  map[string]string
	errs   map[string]error
	opened []string
}

func (f *fakeRenderer) Open(ctx context.Context, url string) (Document, error) {
	f.opened = append(f.opened, url)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	content, ok := f.pages[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return NewHTMLDocument(url, content)
}

func mustDocument(t *testing.T, url, content string) *HTMLDocument {
	t.Helper()
	doc, err := NewHTMLDocument(url, content)
	if err != nil {
		t.Fatalf("NewHTMLDocument() unexpected error: %v", err)
	}
	return doc
}

// page builds a minimal docs page with an article and a next link.
func page(title, body, next string) string {
	nav := ""
	if next != "" {
		nav = `<nav class="pagination"><a class="next" href="` + next + `">Next</a></nav>`
	}
	return `<html><head><title>` + title + ` | Docs</title></head><body>` +
		`<aside class="sidebar">menu</aside>` +
		`<article><h1>` + title + `</h1>` + body + `</article>` + nav +
		`</body></html>`
}
