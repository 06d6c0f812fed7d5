// Package crawl implements the traversal side of the docs-to-PDF pipeline.
//
// A crawl starts from an ordered list of entry points. For each URL the
// Engine asks a Renderer for a rendered Document, extracts the content
// region with an Extractor and, unless paths are restricted, follows the
// pagination link found by a LinkDiscoverer. Each entry point's chain of
// "next" links is followed to exhaustion before the next entry point is
// taken, so the resulting Records mirror the site's reading order.
//
// Everything except the Renderer works on an in-memory Document, which keeps
// extraction and link discovery testable without a browser.
package crawl
