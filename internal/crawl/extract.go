package crawl

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SkipReason explains why a page produced no record.
type SkipReason int

// Skip reasons. SkipNone means a record was produced.
const (
	SkipNone SkipReason = iota
	SkipNoContent
	SkipKeyword
	SkipExcluded
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipNoContent:
		return "content selector matched nothing"
	case SkipKeyword:
		return "filter keyword not in meta keywords"
	case SkipExcluded:
		return "excluded URL"
	default:
		return "unknown"
	}
}

// Record is the content extracted from one page.
type Record struct {
	URL     string
	Title   string
	HTML    string
	Depth   int // outermost heading level, 1 when the page has no heading
	Ordinal int // position in document order, assigned by the Engine
}

// ExtractorConfig configures content extraction.
type ExtractorConfig struct {
	ContentSelector  string
	ExcludeSelectors []string
	FilterKeyword    string
	Exclude          *Matcher
}

// Extractor turns a rendered page into a Record.
type Extractor struct {
	cfg ExtractorConfig
}

// NewExtractor returns an Extractor. Selectors must be valid.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// strippedTags are removed from every fragment regardless of configuration.
const strippedTags = "script, noscript"

// Extract returns the record for doc, or a non-zero SkipReason.
// The returned record has no ordinal.
func (e *Extractor) Extract(doc Document) (*Record, SkipReason) {
	if e.cfg.Exclude.Excluded(doc.URL()) {
		return nil, SkipExcluded
	}
	if e.cfg.FilterKeyword != "" && !hasKeyword(doc.Meta("keywords"), e.cfg.FilterKeyword) {
		return nil, SkipKeyword
	}

	content, err := First(doc, e.cfg.ContentSelector)
	if err != nil {
		return nil, SkipNoContent
	}

	content = content.Clone()
	for _, sel := range e.cfg.ExcludeSelectors {
		if strings.TrimSpace(sel) == "" {
			continue
		}
		content.Find(sel).Remove()
	}
	content.Find(strippedTags).Remove()

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, SkipNoContent
	}

	title, depth := outermostHeading(content)
	if title == "" {
		title = doc.Title()
	}
	if title == "" {
		title = doc.URL()
	}

	return &Record{
		URL:   doc.URL(),
		Title: title,
		HTML:  fragment,
		Depth: depth,
	}, SkipNone
}

// hasKeyword reports whether the comma-separated meta keywords contain kw.
func hasKeyword(keywords, kw string) bool {
	kw = strings.TrimSpace(kw)
	for _, k := range strings.Split(keywords, ",") {
		if strings.EqualFold(strings.TrimSpace(k), kw) {
			return true
		}
	}
	return false
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3,
	atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// outermostHeading returns the text of the first heading in document order
// and the smallest heading level present. Depth is 1 without headings.
func outermostHeading(content *goquery.Selection) (string, int) {
	var title string
	depth := 0
	content.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if n.Type != html.ElementNode {
			return
		}
		level := headingLevels[n.DataAtom]
		if level == 0 {
			return
		}
		if title == "" {
			title = strings.Join(strings.Fields(s.Text()), " ")
		}
		if depth == 0 || level < depth {
			depth = level
		}
	})
	if depth == 0 {
		depth = 1
	}
	return title, depth
}
