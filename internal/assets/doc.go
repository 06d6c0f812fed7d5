// Package assets provides the stylesheet and HTML templates used to compose
// the PDF document.
//
// Three assets exist, each embedded in the binary:
//
//	styles/default.css       # print stylesheet for content pages and TOC
//	templates/cover.html     # cover page (html/template)
//	templates/toc.html       # table of contents (html/template)
//
// A custom directory with the same layout may override any of them.
// Resolver looks in that directory first and falls back to the embedded
// copy when a file is absent. Asset names are validated and the filesystem
// loader refuses paths that resolve outside its base directory.
package assets
