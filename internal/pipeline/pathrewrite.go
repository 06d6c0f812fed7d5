package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-docs2pdf/internal/crawl"
)

// RewriteLinks makes a page fragment self-contained once it is moved into
// the composed document under anchor:
//   - every id (and legacy a[name]) is prefixed with "<anchor>-" so that
//     ids repeated across pages stay unique;
//   - in-page "#x" links point at the prefixed id;
//   - img[src] and a[href] relative to pageURL become absolute URLs;
//   - a[href] pointing at a page present in anchors (keyed by normalized
//     URL) becomes an internal "#anchor" link, or "#anchor-x" when the
//     link carries a fragment.
//
// An empty anchor leaves ids and in-page links untouched. Data URLs and
// non-navigational schemes such as mailto: are never rewritten.
func RewriteLinks(fragment, pageURL, anchor string, anchors map[string]string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: page URL %q: %v", ErrLinkRewrite, pageURL, err)
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLinkRewrite, err)
	}
	walk(root, func(n *html.Node) {
		rewriteAttr(n, "id", func(v string) string { return scopedID(anchor, v) })
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", func(v string) string { return absolute(base, v) })
		case atom.A:
			rewriteAttr(n, "name", func(v string) string { return scopedID(anchor, v) })
			rewriteAttr(n, "href", func(v string) string { return internalOrAbsolute(base, v, anchor, anchors) })
		}
	})

	out, err := renderFragment(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLinkRewrite, err)
	}
	return out, nil
}

// scopedID prefixes id with the section anchor.
func scopedID(anchor, id string) string {
	if anchor == "" || id == "" {
		return id
	}
	return anchor + "-" + id
}

// parseFragment parses content in a <body> context and hangs the resulting
// nodes under a document node for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// renderFragment renders the children of root without a wrapper.
func renderFragment(root *html.Node) (string, error) {
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func rewriteAttr(n *html.Node, key string, fn func(string) string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = fn(attr.Val)
		}
	}
}

// keepAsIs reports references that must not be resolved.
func keepAsIs(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return true
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "file":
		return false
	}
	return true
}

func absolute(base *url.URL, ref string) string {
	if keepAsIs(ref) {
		return ref
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

func internalOrAbsolute(base *url.URL, ref, anchor string, anchors map[string]string) string {
	if frag, ok := strings.CutPrefix(strings.TrimSpace(ref), "#"); ok {
		if frag == "" || anchor == "" {
			return ref
		}
		if decoded, err := url.PathUnescape(frag); err == nil {
			frag = decoded
		}
		return "#" + scopedID(anchor, frag)
	}

	abs := absolute(base, ref)
	if abs == ref && keepAsIs(ref) {
		return ref
	}
	key, err := crawl.Normalize(abs)
	if err != nil {
		return abs
	}
	target, ok := anchors[key]
	if !ok {
		return abs
	}
	if u, err := url.Parse(abs); err == nil && u.Fragment != "" {
		return "#" + scopedID(target, u.Fragment)
	}
	return "#" + target
}
