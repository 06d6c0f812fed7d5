// Package docs2pdf turns a paginated documentation website into a single
// PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, generate the document, and close when done:
//
//	conv, err := docs2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Generate(ctx, docs2pdf.Input{
//	    Crawl: docs2pdf.CrawlConfig{
//	        EntryPoints:        []string{"https://docusaurus.io/docs"},
//	        ContentSelector:    "article",
//	        PaginationSelector: "a.pagination-nav__link--next",
//	    },
//	    Compose: docs2pdf.ComposeConfig{
//	        Cover: &docs2pdf.Cover{Title: "Docusaurus"},
//	        TOC:   &docs2pdf.TOC{Title: "Contents"},
//	    },
//	    OutputPath: "docusaurus.pdf",
//	})
//
// # Pipeline
//
// A run goes through these stages:
//
//  1. Traversal: each entry point is opened, then its "next page" link is
//     followed until the chain ends, before the next entry point. Every URL
//     is visited once.
//  2. Extraction: the content selector picks the page region; exclude
//     selectors, scripts and excluded URLs are dropped.
//  3. Composition: cover, table of contents, optional Markdown preface and
//     one anchored section per page. Links between included pages become
//     internal links; code blocks are highlighted.
//  4. Rendering: the composed HTML is printed to PDF by the same browser and
//     written atomically.
//
// Crawl and Compose expose the first two and last two stages separately.
//
// # Failures
//
// A page that cannot be opened is reported in Result.Failures and the run
// continues, except for the first entry point. Pages without content are
// reported in Result.Skipped. Compose and write failures are *ComposeError
// values and never leave a partial file.
//
// # Presets
//
// DocusaurusPreset fills selectors and CSS for Docusaurus v1 and v2 sites:
//
//	p, _ := docs2pdf.DocusaurusPreset(2)
//	p.Apply(&input.Crawl, &input.Compose)
//
// # Browser Requirements
//
// The go-rod library downloads a managed Chromium on first run
// (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use an installed Chrome,
// and ROD_NO_SANDBOX=1 in containers.
package docs2pdf
