package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docs2pdf <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate, g     Crawl a documentation site into one PDF (default)")
	fmt.Fprintln(w, "  docusaurus, d   Same, with Docusaurus selectors preset")
	fmt.Fprintln(w, "  doctor          Check Chrome and the environment")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docs2pdf help <command>' for details on a specific command.")
}

// printSharedFlags prints the flags of generate and docusaurus.
func printSharedFlags(w io.Writer) {
	fmt.Fprintln(w, "Crawl:")
	fmt.Fprintln(w, "      --docsEntryPoint <urls>      Comma-separated start URLs, in document order")
	fmt.Fprintln(w, "      --contentSelector <sel>      Element wrapping the page content")
	fmt.Fprintln(w, "      --paginationSelector <sel>   Link to the next page")
	fmt.Fprintln(w, "      --excludeSelectors <sels>    Comma-separated elements removed from content")
	fmt.Fprintln(w, "      --excludeURLs <urls>         Comma-separated URLs or globs never visited")
	fmt.Fprintln(w, "      --excludePaths <paths>       Comma-separated path prefixes or globs never visited")
	fmt.Fprintln(w, "      --restrictPaths              Only include the entry points")
	fmt.Fprintln(w, "      --strictEntryPoints          Fail when any entry point has no content")
	fmt.Fprintln(w, "      --filterKeyword <s>          Only include pages whose meta keywords contain it")
	fmt.Fprintln(w, "      --baseUrl <url>              Render from this origin, keep the page URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --outputPDFFilename <path>   Output PDF (default docs-to-pdf.pdf)")
	fmt.Fprintln(w, "      --html                       Also write the composed HTML next to the PDF")
	fmt.Fprintln(w, "  -c, --config <name>              Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --paperFormat <s>            A0-A6, Letter, Legal, Tabloid, Ledger (default A4)")
	fmt.Fprintln(w, "      --pdfMargin <s>              1-4 comma-separated CSS lengths (default 32px)")
	fmt.Fprintln(w, "      --headerTemplate <html>      Page header template")
	fmt.Fprintln(w, "      --footerTemplate <html>      Page footer template (default page numbers)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cover and TOC:")
	fmt.Fprintln(w, "      --coverTitle <s>             Cover title")
	fmt.Fprintln(w, "      --coverSub <s>               Cover subtitle")
	fmt.Fprintln(w, "      --coverImage <path|url>      Cover image")
	fmt.Fprintln(w, "      --tocTitle <s>               Table of contents heading")
	fmt.Fprintln(w, "      --disableTOC                 Disable table of contents")
	fmt.Fprintln(w, "      --preface <path>             Markdown page inserted after the TOC")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --cssStyle <css>             CSS appended to the stylesheet")
	fmt.Fprintln(w, "      --highlightStyle <s>         Code highlight style (default github, none disables)")
	fmt.Fprintln(w, "      --assetPath <dir>            Override stylesheet and templates")
	fmt.Fprintln(w, "      --openDetail                 Open <details> elements (default true)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --puppeteerArgs <flags>      Comma-separated Chrome flags")
	fmt.Fprintln(w, "      --protocolTimeout <ms|dur>   Per-call browser timeout (default 180s)")
	fmt.Fprintln(w, "      --waitForRender <ms|dur>     Wait after each page load")
	fmt.Fprintln(w, "  -t, --timeout <dur>              Whole run timeout (default 30m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                      Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                    Show per-page progress and error chains")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docs2pdf [generate] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Follow next-page links from each entry point and compose the pages into one PDF.")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// printDocusaurusUsage prints usage for the docusaurus command.
func printDocusaurusUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docs2pdf docusaurus [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a PDF from a Docusaurus site with theme selectors preset.")
	fmt.Fprintln(w, "Flags and config values override the preset.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Docusaurus:")
	fmt.Fprintln(w, "      --version <n>                Docusaurus major version: 1 or 2 (default 2)")
	fmt.Fprintln(w, "      --docsDir <dir>              Serve a built site and crawl it")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate", "g":
		printGenerateUsage(env.Stdout)
	case "docusaurus", "d":
		printDocusaurusUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: docs2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox and temp directory status.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docs2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docs2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
