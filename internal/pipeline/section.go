package pipeline

import (
	"html"
	"strconv"
	"strings"
	"unicode"

	"github.com/alnah/go-docs2pdf/internal/crawl"
)

// Section is one page of the composed document.
type Section struct {
	Anchor string
	Title  string
	URL    string
	HTML   string
	Depth  int
}

// NewSections converts crawl records into sections, in record order.
func NewSections(records []crawl.Record) []Section {
	sections := make([]Section, len(records))
	for i, r := range records {
		ordinal := r.Ordinal
		if ordinal == 0 {
			ordinal = i + 1
		}
		sections[i] = Section{
			Anchor: AnchorID(ordinal, r.Title),
			Title:  r.Title,
			URL:    r.URL,
			HTML:   r.HTML,
			Depth:  r.Depth,
		}
	}
	return sections
}

const maxSlugRunes = 48

// AnchorID returns a document-unique anchor for the page at ordinal:
// "p<ordinal>-<slug of title>", or "p<ordinal>" when the slug is empty.
func AnchorID(ordinal int, title string) string {
	var b strings.Builder
	n := 0
	dash := false
	for _, r := range strings.ToLower(title) {
		if n >= maxSlugRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
				n++
			}
			b.WriteRune(r)
			n++
			dash = false
			continue
		}
		dash = true
	}

	id := "p" + strconv.Itoa(ordinal)
	if b.Len() == 0 {
		return id
	}
	return id + "-" + b.String()
}

// contentStart marks where page sections begin in the assembled document.
const contentStart = `<main class="docs2pdf-content">`

// Assemble builds the base HTML document: one section per page, each
// preceded by its anchor, in the given order.
func Assemble(title string, sections []Section) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(contentStart)
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString(`<div class="docs2pdf-page" data-url="`)
		b.WriteString(html.EscapeString(s.URL))
		b.WriteString(`"><a id="`)
		b.WriteString(html.EscapeString(s.Anchor))
		b.WriteString(`" class="docs2pdf-anchor"></a>`)
		b.WriteString("\n")
		b.WriteString(s.HTML)
		b.WriteString("\n</div>\n")
	}
	b.WriteString("</main>\n</body>\n</html>\n")
	return b.String()
}
