package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// CSSInjector adds a stylesheet to an HTML document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block.
type CSSInjection struct{}

// Compile-time interface check.
var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS inserts a <style> block before </head>, after <body> when there
// is no head, or in front of the content otherwise.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := "<style>" + sanitizeCSS(cssContent) + "</style>"
	if idx := strings.Index(strings.ToLower(htmlContent), "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	return insertAfterBody(htmlContent, block)
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// insertAfterBody inserts fragment right after the opening <body> tag, or
// prepends it when the document has none.
func insertAfterBody(htmlContent, fragment string) string {
	lower := strings.ToLower(htmlContent)
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + fragment + htmlContent[pos:]
		}
	}
	return fragment + htmlContent
}

// insertAfterMarker inserts fragment after the first match of marker, or
// after <body> when the marker is absent.
func insertAfterMarker(htmlContent, fragment string, marker *regexp.Regexp) string {
	if loc := marker.FindStringIndex(htmlContent); loc != nil {
		return htmlContent[:loc[1]] + fragment + htmlContent[loc[1]:]
	}
	return insertAfterBody(htmlContent, fragment)
}

// Markers emitted by the cover and toc templates. Spans are used instead of
// comments because html/template strips comments.
var (
	coverEndMarker = regexp.MustCompile(`(?i)<span[^>]*\bdata-cover-end\b[^>]*>\s*</span>`)
	tocEndMarker   = regexp.MustCompile(`(?i)<span[^>]*\bdata-toc-end\b[^>]*>\s*</span>`)
)

// ---------------------------------------------------------------------------
// Cover
// ---------------------------------------------------------------------------

// CoverData holds the cover page content.
type CoverData struct {
	Title    string
	Subtitle string
	Image    string // http(s), file or data URL
}

// Empty reports whether the cover has nothing to show.
func (d *CoverData) Empty() bool {
	return d == nil || (d.Title == "" && d.Subtitle == "" && d.Image == "")
}

// CoverInjector adds a cover page to an HTML document.
type CoverInjector interface {
	InjectCover(ctx context.Context, htmlContent string, data *CoverData) (string, error)
}

// CoverInjection renders the cover template after <body>.
type CoverInjection struct {
	tmpl *template.Template
}

// Compile-time interface check.
var _ CoverInjector = (*CoverInjection)(nil)

// NewCoverInjection parses the cover template.
func NewCoverInjection(tmplContent string) (*CoverInjection, error) {
	tmpl, err := template.New("cover").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: cover: %v", ErrInvalidTemplate, err)
	}
	return &CoverInjection{tmpl: tmpl}, nil
}

type coverView struct {
	Title    string
	Subtitle string
	Image    template.URL
}

// InjectCover returns htmlContent unchanged for an empty cover.
func (c *CoverInjection) InjectCover(ctx context.Context, htmlContent string, data *CoverData) (string, error) {
	if data.Empty() {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := coverView{Title: data.Title, Subtitle: data.Subtitle}
	if data.Image != "" {
		img, err := coverImageURL(data.Image)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
		}
		view.Image = img
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}
	return insertAfterBody(htmlContent, buf.String()), nil
}

// coverImageURL trusts only URL schemes a cover image can load from.
func coverImageURL(raw string) (template.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("cover image %q: %v", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file", "data":
		return template.URL(raw), nil // #nosec G203 -- scheme allowlisted
	}
	return "", fmt.Errorf("cover image %q: unsupported scheme", raw)
}

// ---------------------------------------------------------------------------
// Table of contents
// ---------------------------------------------------------------------------

// TOCData configures the table of contents. A nil *TOCData disables it.
type TOCData struct {
	Title string
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Anchor string
	Title  string
	Number string
	Depth  int // 1-based nesting after normalization
}

// TOCInjector adds a table of contents listing sections.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, sections []Section, data *TOCData) (string, error)
}

// TOCInjection renders the toc template after the cover page.
type TOCInjection struct {
	tmpl *template.Template
}

// Compile-time interface check.
var _ TOCInjector = (*TOCInjection)(nil)

// NewTOCInjection parses the toc template.
func NewTOCInjection(tmplContent string) (*TOCInjection, error) {
	tmpl, err := template.New("toc").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: toc: %v", ErrInvalidTemplate, err)
	}
	return &TOCInjection{tmpl: tmpl}, nil
}

// BuildTOC derives one entry per section, in section order.
func BuildTOC(sections []Section) []TOCEntry {
	entries := make([]TOCEntry, 0, len(sections))
	numbering := newNumberingState()
	for _, s := range sections {
		num, depth := numbering.next(s.Depth)
		entries = append(entries, TOCEntry{
			Anchor: s.Anchor,
			Title:  s.Title,
			Number: num,
			Depth:  depth,
		})
	}
	return entries
}

// InjectTOC returns htmlContent unchanged when data is nil or there are no
// sections.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, sections []Section, data *TOCData) (string, error) {
	if data == nil || len(sections) == 0 {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := struct {
		Title   string
		Entries []TOCEntry
	}{Title: data.Title, Entries: BuildTOC(sections)}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTOCRender, err)
	}
	return insertAfterMarker(htmlContent, buf.String(), coverEndMarker), nil
}

// numberingState assigns hierarchical numbers ("1.", "1.2.") to entries.
// The first level seen becomes depth 1 and jumps of more than one level
// are flattened to a direct child.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastDepth    int
}

func newNumberingState() *numberingState {
	return &numberingState{}
}

func (n *numberingState) next(level int) (string, int) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	depth := max(level-n.minLevelSeen+1, 1)
	if n.lastDepth > 0 && depth > n.lastDepth+1 {
		depth = n.lastDepth + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.lastDepth = depth

	parts := make([]string, depth)
	for i := 0; i < depth; i++ {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}

// ---------------------------------------------------------------------------
// Preface
// ---------------------------------------------------------------------------

// InjectPreface inserts rendered preface HTML after the table of contents,
// or after the cover when there is no table of contents.
func InjectPreface(htmlContent, prefaceHTML string) string {
	if prefaceHTML == "" {
		return htmlContent
	}
	if idx := strings.Index(htmlContent, contentStart); idx != -1 {
		return htmlContent[:idx] + prefaceHTML + htmlContent[idx:]
	}
	if tocEndMarker.MatchString(htmlContent) {
		return insertAfterMarker(htmlContent, prefaceHTML, tocEndMarker)
	}
	return insertAfterMarker(htmlContent, prefaceHTML, coverEndMarker)
}
