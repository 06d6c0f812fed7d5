package docs2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alnah/go-docs2pdf/internal/assets"
	"github.com/alnah/go-docs2pdf/internal/crawl"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/pipeline"
)

// Converter crawls documentation sites and composes them into one PDF.
// Create with NewConverter, run Generate (or Crawl and Compose), and Close
// when done. A Converter owns one browser and is not safe for concurrent
// runs.
type Converter struct {
	cfg      converterConfig
	composer *pipeline.Composer
	session  session
	closed   atomic.Bool
}

// NewConverter creates a Converter. The browser is launched on first use.
// Returns an error if assets cannot be loaded or templates do not parse.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:         DefaultTimeout,
			protocolTimeout: DefaultProtocolTimeout,
			highlightStyle:  pipeline.DefaultHighlightStyle,
			logger:          log.New(io.Discard),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	bundle, err := assets.Load(resolver)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	c.composer, err = pipeline.NewComposer(bundle, c.cfg.highlightStyle)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidTemplate) {
			return nil, newComposeError(InvalidTemplate, err)
		}
		return nil, err
	}

	c.session = newRodSession(c.cfg.protocolTimeout, c.cfg.browserArgs, c.cfg.logger)
	c.cfg.logger.Debug("converter ready", "customAssets", resolver.HasCustom(), "highlight", c.cfg.highlightStyle)
	return c, nil
}

// Generate crawls, composes and writes the document.
// Per-page navigation failures are reported in Result.Failures; the run
// fails only when the first entry point cannot be opened or nothing was
// extracted. No output file is left behind on failure.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	logger := c.runLogger()
	logger.Info("crawl started", "entryPoints", len(input.Crawl.EntryPoints))

	cr, err := c.crawl(ctx, input.Crawl, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("crawl finished", "pages", len(cr.Records), "failures", len(cr.Failures), "skipped", len(cr.Skipped))

	doc, err := c.compose(ctx, cr.Records, input.Compose, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Pages:    doc.Pages,
		Failures: cr.Failures,
		Skipped:  cr.Skipped,
		HTML:     doc.HTML,
	}

	if input.HTMLPath != "" {
		if err := fileutil.WriteFileAtomic(input.HTMLPath, doc.HTML, 0o644); err != nil {
			return nil, newComposeError(WriteFailure, err)
		}
		logger.Info("html written", "path", input.HTMLPath)
	}
	if doc.PDF == nil {
		return res, nil
	}

	if err := fileutil.WriteFileAtomic(input.OutputPath, doc.PDF, 0o644); err != nil {
		if input.HTMLPath != "" {
			_ = os.Remove(input.HTMLPath)
		}
		return nil, newComposeError(WriteFailure, err)
	}
	res.Path = input.OutputPath
	logger.Info("pdf written", "path", res.Path, "pages", res.Pages)
	return res, nil
}

// Crawl visits the configured pages and returns the ordered records
// without composing a document.
func (c *Converter) Crawl(ctx context.Context, cfg CrawlConfig) (result *CrawlResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return c.crawl(ctx, cfg, c.runLogger())
}

// Compose builds the HTML document from records, in order, and renders it
// to PDF unless cfg.HTMLOnly is set. Nothing is written to disk.
func (c *Converter) Compose(ctx context.Context, records []Record, cfg ComposeConfig) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return c.compose(ctx, records, cfg, c.runLogger())
}

// Close releases the browser and kills its process tree.
func (c *Converter) Close() error {
	c.closed.Store(true)
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *Converter) runLogger() *log.Logger {
	return c.cfg.logger.With("run", uuid.NewString())
}

func (c *Converter) crawl(ctx context.Context, cfg CrawlConfig, logger *log.Logger) (*CrawlResult, error) {
	matcher, err := crawl.NewMatcher(cfg.ExcludeURLs, cfg.ExcludePaths)
	if err != nil {
		return nil, err
	}

	extractor := crawl.NewExtractor(crawl.ExtractorConfig{
		ContentSelector:  cfg.ContentSelector,
		ExcludeSelectors: cfg.ExcludeSelectors,
		FilterKeyword:    cfg.FilterKeyword,
		Exclude:          matcher,
	})
	links := crawl.NewLinkDiscoverer(cfg.PaginationSelector, matcher)
	renderer := sessionRenderer{
		s:   c.session,
		nav: navigation{BaseURL: cfg.BaseURL, WaitForRender: cfg.WaitForRender},
	}

	engine := crawl.NewEngine(renderer, extractor, links, crawl.Config{
		EntryPoints:       cfg.EntryPoints,
		RestrictPaths:     cfg.RestrictPaths,
		StrictEntryPoints: cfg.StrictEntryPoints,
	}, logger)

	res, err := engine.Run(ctx)
	if err != nil {
		return nil, err
	}
	return fromCrawlResult(res), nil
}

func (c *Converter) compose(ctx context.Context, records []Record, cfg ComposeConfig, logger *log.Logger) (*Document, error) {
	if len(records) == 0 {
		return nil, ErrEmptyRecords
	}

	opts, err := toPipelineOptions(records, cfg)
	if err != nil {
		return nil, err
	}

	sections := pipeline.NewSections(toCrawlRecords(records))
	htmlContent, err := c.composer.Compose(ctx, sections, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, classifyCompose(err)
	}
	logger.Debug("document composed", "sections", len(sections), "bytes", len(htmlContent))

	doc := &Document{HTML: []byte(htmlContent), Pages: len(records)}
	if cfg.HTMLOnly {
		return doc, nil
	}

	pdf, err := renderPDF(ctx, c.session, htmlContent, cfg.Page)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, newComposeError(RenderFailure, err)
	}
	doc.PDF = pdf
	return doc, nil
}

// toPipelineOptions resolves defaults: the document title falls back to the
// cover title, then to the first page title; a local cover image becomes a
// file URL.
func toPipelineOptions(records []Record, cfg ComposeConfig) (*pipeline.Options, error) {
	opts := &pipeline.Options{
		Title:      cfg.Title,
		CSS:        cfg.CSS,
		Preface:    cfg.Preface,
		OpenDetail: cfg.OpenDetail,
	}

	if cfg.Cover != nil {
		image := cfg.Cover.Image
		if image != "" {
			u, err := fileutil.ToFileURL(image)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCoverImage, err)
			}
			image = u
		}
		opts.Cover = &pipeline.CoverData{Title: cfg.Cover.Title, Subtitle: cfg.Cover.Subtitle, Image: image}
		if opts.Title == "" {
			opts.Title = cfg.Cover.Title
		}
	}
	if opts.Title == "" && len(records) > 0 {
		opts.Title = records[0].Title
	}

	if cfg.TOC != nil {
		opts.TOC = &pipeline.TOCData{Title: cfg.TOC.Title}
	}
	return opts, nil
}

func toCrawlRecords(records []Record) []crawl.Record {
	out := make([]crawl.Record, len(records))
	for i, r := range records {
		out[i] = crawl.Record(r)
	}
	return out
}

func fromCrawlResult(res *crawl.Result) *CrawlResult {
	out := &CrawlResult{
		Records: make([]Record, len(res.Records)),
		Visited: res.Visited,
	}
	for i, r := range res.Records {
		out.Records[i] = Record(r)
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, Failure{URL: f.URL, Err: f.Err})
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, Skipped{URL: s.URL, Reason: s.Reason.String()})
	}
	return out
}
