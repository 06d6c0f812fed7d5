package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// crawlFlags select and order pages.
type crawlFlags struct {
	entryPoints        []string
	contentSelector    string
	paginationSelector string
	excludeSelectors   []string
	excludeURLs        []string
	excludePaths       []string
	restrictPaths      bool
	strictEntryPoints  bool
	filterKeyword      string
	baseURL            string
}

// browserFlags tune the headless browser.
type browserFlags struct {
	args            []string
	protocolTimeout string
	waitForRender   string
	timeout         string
}

// outputFlags name the produced files.
type outputFlags struct {
	pdf  string
	html bool
}

// styleFlags control presentation.
type styleFlags struct {
	css        string
	highlight  string
	assetPath  string
	openDetail bool
	preface    string
}

// coverFlags hold cover page content.
type coverFlags struct {
	title    string
	subtitle string
	image    string
}

// tocFlags control the table of contents.
type tocFlags struct {
	title    string
	disabled bool
}

// pageFlags control page geometry and running header/footer.
type pageFlags struct {
	format         string
	margin         string
	headerTemplate string
	footerTemplate string
}

// docusaurusFlags are specific to the docusaurus command.
type docusaurusFlags struct {
	version int
	docsDir string
}

// generateFlags holds all flags for the generate and docusaurus commands.
type generateFlags struct {
	common     commonFlags
	crawl      crawlFlags
	browser    browserFlags
	output     outputFlags
	style      styleFlags
	cover      coverFlags
	toc        tocFlags
	page       pageFlags
	docusaurus docusaurusFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page progress and full error chains")
}

func addCrawlFlags(fs *flag.FlagSet, f *crawlFlags) {
	fs.StringSliceVar(&f.entryPoints, "docsEntryPoint", nil, "comma-separated URLs to start from, in order")
	fs.StringVar(&f.contentSelector, "contentSelector", "", "selector of the page content region")
	fs.StringVar(&f.paginationSelector, "paginationSelector", "", "selector of the next page link")
	fs.StringSliceVar(&f.excludeSelectors, "excludeSelectors", nil, "comma-separated selectors removed from content")
	fs.StringSliceVar(&f.excludeURLs, "excludeURLs", nil, "comma-separated URLs or globs to skip")
	fs.StringSliceVar(&f.excludePaths, "excludePaths", nil, "comma-separated path prefixes or globs to skip")
	fs.BoolVar(&f.restrictPaths, "restrictPaths", false, "only include the entry points")
	fs.BoolVar(&f.strictEntryPoints, "strictEntryPoints", false, "fail when an entry point has no content")
	fs.StringVar(&f.filterKeyword, "filterKeyword", "", "only include pages whose meta keywords contain it")
	fs.StringVar(&f.baseURL, "baseUrl", "", "render from this origin while keeping the page URLs")
}

func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringSliceVar(&f.args, "puppeteerArgs", nil, "comma-separated Chrome flags, e.g. --no-sandbox")
	fs.StringVar(&f.protocolTimeout, "protocolTimeout", "", "per-call browser timeout (ms or duration, default 180s)")
	fs.StringVar(&f.waitForRender, "waitForRender", "", "wait after page load (ms or duration)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "whole run timeout (duration, default 30m)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.pdf, "outputPDFFilename", "o", "", "output PDF path (default docs-to-pdf.pdf)")
	fs.BoolVar(&f.html, "html", false, "also write the composed HTML next to the PDF")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.css, "cssStyle", "", "CSS appended to the stylesheet")
	fs.StringVar(&f.highlight, "highlightStyle", "", "code highlight style (default github, none disables)")
	fs.StringVar(&f.assetPath, "assetPath", "", "directory overriding the stylesheet and templates")
	fs.BoolVar(&f.openDetail, "openDetail", true, "open <details> elements")
	fs.StringVar(&f.preface, "preface", "", "Markdown file rendered after the table of contents")
}

func addCoverFlags(fs *flag.FlagSet, f *coverFlags) {
	fs.StringVar(&f.title, "coverTitle", "", "cover title")
	fs.StringVar(&f.subtitle, "coverSub", "", "cover subtitle")
	fs.StringVar(&f.image, "coverImage", "", "cover image URL or path")
}

func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "tocTitle", "", "table of contents heading")
	fs.BoolVar(&f.disabled, "disableTOC", false, "disable table of contents")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.format, "paperFormat", "", "paper format: A0-A6, Letter, Legal, Tabloid, Ledger (default A4)")
	fs.StringVar(&f.margin, "pdfMargin", "", "1-4 comma-separated CSS lengths (default 32px)")
	fs.StringVar(&f.headerTemplate, "headerTemplate", "", "page header HTML template")
	fs.StringVar(&f.footerTemplate, "footerTemplate", "", "page footer HTML template")
}

func addDocusaurusFlags(fs *flag.FlagSet, f *docusaurusFlags) {
	fs.IntVar(&f.version, "version", 2, "Docusaurus major version (1 or 2)")
	fs.StringVar(&f.docsDir, "docsDir", "", "serve this built site directory and crawl it")
}

// parseGenerateFlags parses flags for the generate command, or for the
// docusaurus command when docusaurus is true.
func parseGenerateFlags(args []string, docusaurus bool, stderr io.Writer) (*generateFlags, error) {
	name := "generate"
	if docusaurus {
		name = "docusaurus"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	addCommonFlags(fs, &f.common)
	addCrawlFlags(fs, &f.crawl)
	addBrowserFlags(fs, &f.browser)
	addOutputFlags(fs, &f.output)
	addStyleFlags(fs, &f.style)
	addCoverFlags(fs, &f.cover)
	addTOCFlags(fs, &f.toc)
	addPageFlags(fs, &f.page)
	if docusaurus {
		addDocusaurusFlags(fs, &f.docusaurus)
	}

	fs.Usage = func() {
		if docusaurus {
			printDocusaurusUsage(stderr)
		} else {
			printGenerateUsage(stderr)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	f.changed = fs.Changed
	return f, nil
}
