package docs2pdf

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-docs2pdf/internal/crawl"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
)

// CrawlConfig selects and orders the pages of one run. It is read-only
// once the crawl starts.
type CrawlConfig struct {
	EntryPoints        []string // absolute URLs, order preserved (required)
	ContentSelector    string   // content region of each page (required)
	PaginationSelector string   // "next page" link; required unless RestrictPaths
	ExcludeSelectors   []string // subtrees removed from the content
	ExcludeURLs        []string // literal URLs or globs
	ExcludePaths       []string // path prefixes or globs
	RestrictPaths      bool     // visit entry points only
	StrictEntryPoints  bool     // a skipped entry point aborts the run
	FilterKeyword      string   // keep pages whose meta keywords contain it
	BaseURL            string   // rewrites the navigation origin
	WaitForRender      time.Duration
}

// Validate checks that the crawl can start.
func (c *CrawlConfig) Validate() error {
	if len(c.EntryPoints) == 0 {
		return ErrNoEntryPoints
	}
	for _, ep := range c.EntryPoints {
		if _, err := crawl.Normalize(ep); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.ContentSelector) == "" {
		return fmt.Errorf("%w: content selector", ErrEmptySelector)
	}
	if err := crawl.ValidateSelector(c.ContentSelector); err != nil {
		return err
	}
	if c.PaginationSelector == "" && !c.RestrictPaths {
		return fmt.Errorf("%w: pagination selector (required unless restricting to entry points)", ErrEmptySelector)
	}
	if c.PaginationSelector != "" {
		if err := crawl.ValidateSelector(c.PaginationSelector); err != nil {
			return err
		}
	}
	for _, sel := range c.ExcludeSelectors {
		if err := crawl.ValidateSelector(sel); err != nil {
			return err
		}
	}
	if _, err := crawl.NewMatcher(c.ExcludeURLs, c.ExcludePaths); err != nil {
		return err
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q (must be an absolute http(s) URL)", ErrInvalidBaseURL, c.BaseURL)
		}
	}
	if c.WaitForRender < 0 {
		return fmt.Errorf("%w: %v (must not be negative)", ErrInvalidWaitPeriod, c.WaitForRender)
	}
	return nil
}

// Cover configures the cover page. A nil or empty Cover is omitted.
type Cover struct {
	Title    string
	Subtitle string
	Image    string // URL or local file path
}

// Validate checks that a local cover image exists.
// Returns nil if c is nil (nil means no cover).
func (c *Cover) Validate() error {
	if c == nil || c.Image == "" || fileutil.IsURL(c.Image) {
		return nil
	}
	if !fileutil.FileExists(c.Image) {
		return fmt.Errorf("%w: %s: file not found", ErrCoverImage, c.Image)
	}
	return nil
}

// TOC configures the table of contents. A nil TOC disables it.
type TOC struct {
	Title string // heading above the entries; empty: no heading
}

// MaxTOCTitleLength caps the TOC heading, in runes.
const MaxTOCTitleLength = 200

// Validate checks that the title fits on a single heading line.
// Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if n := utf8.RuneCountInString(t.Title); n > MaxTOCTitleLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrInvalidTOCTitle, n, MaxTOCTitleLength)
	}
	if strings.ContainsAny(t.Title, "\r\n") {
		return fmt.Errorf("%w: must be a single line", ErrInvalidTOCTitle)
	}
	return nil
}

// PageSettings configures PDF page geometry and running header/footer.
// Empty fields use DefaultPaperFormat, DefaultMargin and the default footer.
type PageSettings struct {
	Format         string // paper format name, e.g. "A4", "Letter"
	Margin         string // 1 to 4 comma-separated CSS lengths
	HeaderTemplate string // Chrome header template markup
	FooterTemplate string // Chrome footer template markup
}

// Validate checks the paper format and margin syntax.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Format != "" {
		if _, err := ParsePaperFormat(p.Format); err != nil {
			return err
		}
	}
	if p.Margin != "" {
		if _, err := ParseMargin(p.Margin); err != nil {
			return err
		}
	}
	return nil
}

// ComposeConfig controls how records become a document.
type ComposeConfig struct {
	Title      string // document title; defaults to the cover title, then the first page title
	CSS        string // appended after the stylesheet
	Cover      *Cover
	TOC        *TOC
	Preface    string // Markdown rendered between the TOC and the pages
	Page       *PageSettings
	OpenDetail bool // force <details> elements open
	HTMLOnly   bool // skip PDF rendering
}

// Validate checks every configured part.
func (c *ComposeConfig) Validate() error {
	if err := c.Cover.Validate(); err != nil {
		return err
	}
	if err := c.TOC.Validate(); err != nil {
		return err
	}
	return c.Page.Validate()
}

// Input contains the parameters of a full Generate run.
type Input struct {
	Crawl      CrawlConfig
	Compose    ComposeConfig
	OutputPath string // PDF destination (required unless Compose.HTMLOnly)
	HTMLPath   string // optional composed HTML destination
}

// Validate checks the crawl and compose configuration and the outputs.
func (in *Input) Validate() error {
	if err := in.Crawl.Validate(); err != nil {
		return err
	}
	if err := in.Compose.Validate(); err != nil {
		return err
	}
	if in.OutputPath == "" && !in.Compose.HTMLOnly {
		return ErrEmptyOutputPath
	}
	return nil
}

// Record is one extracted page, in document order.
type Record struct {
	URL     string
	Title   string
	HTML    string // sanitized content fragment
	Depth   int    // outermost heading level
	Ordinal int    // 1-based position in the document
}

// Failure is a page that could not be opened.
type Failure struct {
	URL string
	Err error
}

// Skipped is a page that was opened but left out of the document.
type Skipped struct {
	URL    string
	Reason string
}

// CrawlResult is the ordered output of Crawl.
type CrawlResult struct {
	Records  []Record
	Failures []Failure
	Skipped  []Skipped
	Visited  []string
}

// Document is a composed document.
type Document struct {
	HTML  []byte
	PDF   []byte // nil when HTMLOnly
	Pages int    // number of included web pages
}

// Result is the outcome of Generate.
type Result struct {
	Path     string // PDF path; empty when HTMLOnly
	Pages    int
	Failures []Failure
	Skipped  []Skipped
	HTML     []byte
}
