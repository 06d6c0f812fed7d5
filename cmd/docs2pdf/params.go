package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/config"
	"github.com/alnah/go-docs2pdf/internal/crawl"
	"github.com/alnah/go-docs2pdf/internal/site"
)

// DefaultOutput is the PDF path used when neither flags nor config set one.
const DefaultOutput = "docs-to-pdf.pdf"

// runParams is the resolved input of one generate run.
type runParams struct {
	input docs2pdf.Input
	opts  []docs2pdf.Option
	site  *site.Server
}

// close stops the local docs server, if any.
func (p *runParams) close() {
	if p.site == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.site.Close(ctx)
}

// buildParams merges built-in defaults, the config file and the flags,
// later layers winning. The docusaurus preset then fills selectors left
// unset. The caller must call close on the result.
func buildParams(f *generateFlags, docusaurus bool, logger *log.Logger) (*runParams, error) {
	cfg := &config.Config{}
	if f.common.config != "" {
		loaded, err := config.LoadConfig(f.common.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	in, err := buildInput(f, cfg)
	if err != nil {
		return nil, err
	}
	opts, err := buildOptions(f, cfg, logger)
	if err != nil {
		return nil, err
	}
	p := &runParams{input: in, opts: opts}

	if docusaurus {
		preset, err := docs2pdf.DocusaurusPreset(f.docusaurus.version)
		if err != nil {
			return nil, err
		}
		preset.Apply(&p.input.Crawl, &p.input.Compose)

		if f.docusaurus.docsDir != "" {
			srv, err := site.Start(f.docusaurus.docsDir)
			if err != nil {
				return nil, err
			}
			p.site = srv
			logger.Info("serving docs", "dir", f.docusaurus.docsDir, "url", srv.URL())
			entries, err := resolveEntryPoints(srv.URL(), p.input.Crawl.EntryPoints)
			if err != nil {
				p.close()
				return nil, err
			}
			p.input.Crawl.EntryPoints = entries
		}
	}
	return p, nil
}

func buildInput(f *generateFlags, cfg *config.Config) (docs2pdf.Input, error) {
	var in docs2pdf.Input

	cr := &in.Crawl
	cr.EntryPoints = pick(f, "docsEntryPoint", f.crawl.entryPoints, cfg.Crawl.EntryPoints)
	cr.ContentSelector = pick(f, "contentSelector", f.crawl.contentSelector, cfg.Crawl.ContentSelector)
	cr.PaginationSelector = pick(f, "paginationSelector", f.crawl.paginationSelector, cfg.Crawl.PaginationSelector)
	cr.ExcludeSelectors = pick(f, "excludeSelectors", f.crawl.excludeSelectors, cfg.Crawl.ExcludeSelectors)
	cr.ExcludeURLs = pick(f, "excludeURLs", f.crawl.excludeURLs, cfg.Crawl.ExcludeURLs)
	cr.ExcludePaths = pick(f, "excludePaths", f.crawl.excludePaths, cfg.Crawl.ExcludePaths)
	cr.RestrictPaths = pick(f, "restrictPaths", f.crawl.restrictPaths, cfg.Crawl.RestrictPaths)
	cr.StrictEntryPoints = pick(f, "strictEntryPoints", f.crawl.strictEntryPoints, cfg.Crawl.StrictEntryPoints)
	cr.FilterKeyword = pick(f, "filterKeyword", f.crawl.filterKeyword, cfg.Crawl.FilterKeyword)
	cr.BaseURL = pick(f, "baseUrl", f.crawl.baseURL, cfg.Crawl.BaseURL)

	wait, err := parseMillisOrDuration("waitForRender",
		pick(f, "waitForRender", f.browser.waitForRender, cfg.Browser.WaitForRender))
	if err != nil {
		return in, err
	}
	cr.WaitForRender = wait

	co := &in.Compose
	co.CSS = pick(f, "cssStyle", f.style.css, cfg.Style.CSS)
	co.OpenDetail = f.style.openDetail
	if !f.changed("openDetail") && cfg.OpenDetail != nil {
		co.OpenDetail = *cfg.OpenDetail
	}

	cover := docs2pdf.Cover{
		Title:    pick(f, "coverTitle", f.cover.title, cfg.Cover.Title),
		Subtitle: pick(f, "coverSub", f.cover.subtitle, cfg.Cover.Subtitle),
		Image:    pick(f, "coverImage", f.cover.image, cfg.Cover.Image),
	}
	if cover != (docs2pdf.Cover{}) {
		co.Cover = &cover
	}

	if !pick(f, "disableTOC", f.toc.disabled, cfg.TOC.Disabled) {
		co.TOC = &docs2pdf.TOC{Title: pick(f, "tocTitle", f.toc.title, cfg.TOC.Title)}
	}

	co.Page = &docs2pdf.PageSettings{
		Format:         pick(f, "paperFormat", f.page.format, cfg.Page.Format),
		Margin:         pick(f, "pdfMargin", f.page.margin, cfg.Page.Margin),
		HeaderTemplate: pick(f, "headerTemplate", f.page.headerTemplate, cfg.Page.HeaderTemplate),
		FooterTemplate: pick(f, "footerTemplate", f.page.footerTemplate, cfg.Page.FooterTemplate),
	}

	if path := pick(f, "preface", f.style.preface, cfg.Preface); path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-selected preface file
		if err != nil {
			return in, fmt.Errorf("%w: %v", docs2pdf.ErrPrefaceRead, err)
		}
		co.Preface = string(data)
	}

	in.OutputPath = pick(f, "outputPDFFilename", f.output.pdf, cfg.Output.PDF)
	if in.OutputPath == "" {
		in.OutputPath = DefaultOutput
	}
	in.HTMLPath = cfg.Output.HTML
	if f.output.html {
		in.HTMLPath = htmlPathFor(in.OutputPath)
	}
	return in, nil
}

func buildOptions(f *generateFlags, cfg *config.Config, logger *log.Logger) ([]docs2pdf.Option, error) {
	opts := []docs2pdf.Option{docs2pdf.WithLogger(logger)}

	if f.browser.timeout != "" {
		d, err := parseMillisOrDuration("timeout", f.browser.timeout)
		if err != nil {
			return nil, err
		}
		if d == 0 {
			return nil, fmt.Errorf("%w: --timeout must be positive", ErrInvalidFlag)
		}
		opts = append(opts, docs2pdf.WithTimeout(d))
	}

	pt, err := parseMillisOrDuration("protocolTimeout",
		pick(f, "protocolTimeout", f.browser.protocolTimeout, cfg.Browser.ProtocolTimeout))
	if err != nil {
		return nil, err
	}
	if pt > 0 {
		opts = append(opts, docs2pdf.WithProtocolTimeout(pt))
	}

	if args := pick(f, "puppeteerArgs", f.browser.args, cfg.Browser.Args); len(args) > 0 {
		opts = append(opts, docs2pdf.WithBrowserArgs(args...))
	}
	if dir := pick(f, "assetPath", f.style.assetPath, cfg.Style.AssetPath); dir != "" {
		opts = append(opts, docs2pdf.WithAssetPath(dir))
	}
	if style := pick(f, "highlightStyle", f.style.highlight, cfg.Style.Highlight); style != "" {
		opts = append(opts, docs2pdf.WithHighlightStyle(style))
	}
	return opts, nil
}

// resolveEntryPoints resolves relative entry points against the local
// server. No entry points means the server root.
func resolveEntryPoints(base string, entries []string) ([]string, error) {
	base = strings.TrimSuffix(base, "/") + "/"
	if len(entries) == 0 {
		return []string{base}, nil
	}
	out := make([]string, 0, len(entries))
	for _, ep := range entries {
		if isHTTPURL(ep) {
			out = append(out, ep)
			continue
		}
		u, err := crawl.Resolve(base, strings.TrimPrefix(ep, "/"))
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// parseMillisOrDuration accepts bare milliseconds ("3000") or a Go
// duration ("3s"). Empty is zero.
func parseMillisOrDuration(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("%w: --%s must not be negative", ErrInvalidFlag, name)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: --%s %q: want milliseconds or a duration like 90s", ErrInvalidFlag, name, value)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: --%s must not be negative", ErrInvalidFlag, name)
	}
	return d, nil
}

// htmlPathFor returns the HTML path written next to a PDF.
func htmlPathFor(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// pick returns the flag value when the flag was set, else the config value.
func pick[T any](f *generateFlags, name string, flagValue, cfgValue T) T {
	if f.changed(name) {
		return flagValue
	}
	return cfgValue
}
