// Package pipeline composes crawled page fragments into one printable HTML
// document.
//
// Composition is a sequence of pure string transformations:
//   - per-fragment link rewriting and code highlighting (chroma)
//   - assembly of the base document, one anchored section per page
//   - CSS injection
//   - cover page injection (html/template)
//   - table of contents injection, one entry per section
//   - optional Markdown preface (goldmark)
//   - forcing <details> elements open
//
// Printing the result to PDF is handled by the root docs2pdf package with
// headless Chrome (go-rod).
package pipeline
