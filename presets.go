package docs2pdf

import "fmt"

// Preset holds the selectors and CSS for a documentation theme.
type Preset struct {
	Name               string
	ContentSelector    string
	PaginationSelector string
	ExcludeSelectors   []string
	CSS                string
}

// DefaultDocusaurusVersion is the Docusaurus major version assumed when none
// is given.
const DefaultDocusaurusVersion = 2

// DocusaurusPreset returns the preset for Docusaurus major version 1 or 2.
func DocusaurusPreset(version int) (Preset, error) {
	switch version {
	case 1:
		return Preset{
			Name:               "docusaurus-v1",
			ContentSelector:    "article",
			PaginationSelector: ".docs-prevnext > a.docs-next",
			ExcludeSelectors: []string{
				".fixedHeaderContainer",
				"footer.nav-footer",
				"#docsNav",
				"nav.onPageNav",
				"a.edit-page-link",
				"div.docs-prevnext",
			},
			CSS: ".navPusher {padding-top: 0;}",
		}, nil
	case 2:
		return Preset{
			Name:               "docusaurus-v2",
			ContentSelector:    "article",
			PaginationSelector: "a.pagination-nav__link.pagination-nav__link--next",
			ExcludeSelectors: []string{
				".margin-vert--xl a",
				"[class^='tocCollapsible']",
				".breadcrumbs",
				".theme-edit-this-page",
			},
		}, nil
	default:
		return Preset{}, fmt.Errorf("%w: docusaurus %d (must be 1 or 2)", ErrInvalidPreset, version)
	}
}

// Apply fills the selectors and CSS that are not already set. Preset CSS is
// placed before user CSS so the user can override it.
func (p Preset) Apply(cr *CrawlConfig, co *ComposeConfig) {
	if cr != nil {
		if cr.ContentSelector == "" {
			cr.ContentSelector = p.ContentSelector
		}
		if cr.PaginationSelector == "" {
			cr.PaginationSelector = p.PaginationSelector
		}
		if len(cr.ExcludeSelectors) == 0 {
			cr.ExcludeSelectors = append([]string(nil), p.ExcludeSelectors...)
		}
	}
	if co != nil && p.CSS != "" {
		if co.CSS == "" {
			co.CSS = p.CSS
		} else {
			co.CSS = p.CSS + "\n" + co.CSS
		}
	}
}
