package crawl

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkDiscoverer finds the link that continues a pagination chain.
type LinkDiscoverer struct {
	selector string
	exclude  *Matcher
}

// NewLinkDiscoverer returns a discoverer for the pagination selector.
// An empty selector disables discovery.
func NewLinkDiscoverer(selector string, exclude *Matcher) *LinkDiscoverer {
	return &LinkDiscoverer{selector: selector, exclude: exclude}
}

// NextLink returns the normalized absolute URL of the next page.
// It returns false when the selector matches nothing, the href is unusable,
// leaves the site, was already visited, or is excluded.
func (l *LinkDiscoverer) NextLink(doc Document, visited *VisitedSet) (string, bool) {
	if l.selector == "" {
		return "", false
	}
	sel := doc.Find(l.selector).First()
	if sel.Length() == 0 {
		return "", false
	}

	href, ok := hrefOf(sel)
	if !ok {
		return "", false
	}
	next, err := Resolve(doc.URL(), href)
	if err != nil {
		return "", false
	}
	if !sameSite(doc.URL(), next) {
		return "", false
	}
	if visited != nil && visited.Contains(next) {
		return "", false
	}
	if l.exclude.Excluded(next) {
		return "", false
	}
	return next, true
}

// hrefOf reads href from the element itself or from its first descendant
// anchor, so selectors may target either the link or its container.
func hrefOf(sel *goquery.Selection) (string, bool) {
	href, ok := sel.Attr("href")
	if !ok {
		href, ok = sel.Find("a[href]").First().Attr("href")
	}
	if !ok {
		return "", false
	}
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)
	switch {
	case href == "", strings.HasPrefix(href, "#"):
		return "", false
	case strings.HasPrefix(lower, "javascript:"), strings.HasPrefix(lower, "mailto:"), strings.HasPrefix(lower, "tel:"):
		return "", false
	}
	return href, true
}
