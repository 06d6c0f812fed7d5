package docs2pdf_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-docs2pdf"
)

// Example_compose composes already extracted records into HTML.
// For PDF output, leave HTMLOnly false (requires Chrome).
func Example_compose() {
	conv, err := docs2pdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	records := []docs2pdf.Record{
		{URL: "https://docs.example.com/intro", Title: "Intro", HTML: "<h1>Intro</h1>", Depth: 1, Ordinal: 1},
		{URL: "https://docs.example.com/setup", Title: "Setup", HTML: "<h1>Setup</h1>", Depth: 1, Ordinal: 2},
	}

	doc, err := conv.Compose(context.Background(), records, docs2pdf.ComposeConfig{
		Cover:    &docs2pdf.Cover{Title: "Example"},
		TOC:      &docs2pdf.TOC{Title: "Contents"},
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html := string(doc.HTML)
	fmt.Println(doc.Pages, strings.Contains(html, `href="#p1-intro"`), strings.Contains(html, `href="#p2-setup"`))
	// Output: 2 true true
}

// ExampleDocusaurusPreset fills Docusaurus v2 selectors.
func ExampleDocusaurusPreset() {
	p, err := docs2pdf.DocusaurusPreset(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	cfg := docs2pdf.CrawlConfig{EntryPoints: []string{"https://docusaurus.io/docs"}}
	p.Apply(&cfg, nil)
	fmt.Println(cfg.ContentSelector)
	fmt.Println(cfg.PaginationSelector)
	// Output:
	// article
	// a.pagination-nav__link.pagination-nav__link--next
}

// ExampleParseMargin converts CSS lengths to inches.
func ExampleParseMargin() {
	m, err := docs2pdf.ParseMargin("96px,1cm")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.2f %.2f\n", m.Top, m.Left)
	// Output: 1.00 0.39
}
