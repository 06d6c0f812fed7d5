package docs2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docs2pdf/internal/crawl"
)

// ---------------------------------------------------------------------------
// Fake Session
// ---------------------------------------------------------------------------

// fakeSession serves canned pages and records every call.
type fakeSession struct {
	mu       sync.Mutex
	pages    map[string]string // normalized URL -> full HTML
	errs     map[string]error
	pdf      []byte
	printErr error

	opened      []string
	navs        []navigation
	printedHTML string
	printedOpts *proto.PagePrintToPDF
	closed      int
}

var _ session = (*fakeSession)(nil)

func newFakeSession(pages map[string]string) *fakeSession {
	return &fakeSession{pages: pages, errs: map[string]error{}, pdf: []byte("%PDF-1.7 fake")}
}

func (f *fakeSession) Open(ctx context.Context, target string, nav navigation) (crawl.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.opened = append(f.opened, target)
	f.navs = append(f.navs, nav)
	if err, ok := f.errs[target]; ok {
		return nil, crawl.NewNavigationError(target, err)
	}
	content, ok := f.pages[target]
	if !ok {
		return nil, crawl.NewNavigationError(target, errors.New("net::ERR_NAME_NOT_RESOLVED"))
	}
	return crawl.NewHTMLDocument(target, content)
}

func (f *fakeSession) PrintPDF(ctx context.Context, htmlPath string, opts *proto.PagePrintToPDF) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, err
	}
	f.printedHTML = string(content)
	f.printedOpts = opts
	if f.printErr != nil {
		return nil, f.printErr
	}
	return f.pdf, nil
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const site = "https://docs.example.com"

// docPage builds a Docusaurus-like page with a next link when next != "".
func docPage(title, body, next string) string {
	nav := ""
	if next != "" {
		nav = fmt.Sprintf(`<nav><a class="pagination-nav__link pagination-nav__link--next" href="%s">Next</a></nav>`, next)
	}
	return fmt.Sprintf(`<!DOCTYPE html><html><head><title>%s | Docs</title></head><body>
<aside class="sidebar">menu</aside>
<article><div class="breadcrumbs">Home</div><h1>%s</h1>%s</article>%s
</body></html>`, title, title, body, nav)
}

// threePageSite is intro -> install -> usage, with usage linking back to intro.
func threePageSite() map[string]string {
	return map[string]string{
		site + "/docs/intro":   docPage("Intro", `<p>Welcome. See <a href="/docs/usage">usage</a>.</p>`, "/docs/install"),
		site + "/docs/install": docPage("Install", `<pre><code class="language-go">package main</code></pre>`, "/docs/usage"),
		site + "/docs/usage":   docPage("Usage", `<details><summary>More</summary><p>hidden</p></details>`, "/docs/intro"),
	}
}

func newTestConverter(t *testing.T, s *fakeSession, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	c.session = s
	return c
}

func docusaurusCrawl(entryPoints ...string) CrawlConfig {
	return CrawlConfig{
		EntryPoints:        entryPoints,
		ContentSelector:    "article",
		PaginationSelector: "a.pagination-nav__link--next",
		ExcludeSelectors:   []string{".breadcrumbs"},
	}
}
