package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/config"
	"github.com/alnah/go-docs2pdf/internal/hints"
)

// runGenerate runs the generate command, or the docusaurus command when
// docusaurus is true, and returns an exit code.
func runGenerate(args []string, docusaurus bool, env *Environment) int {
	f, err := parseGenerateFlags(args, docusaurus, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'docs2pdf help' for usage.")
		return ExitUsage
	}

	logger := newLogger(env.Stderr, f.common.quiet, f.common.verbose)

	p, err := buildParams(f, docusaurus, logger)
	if err != nil {
		reportError(logger, err, f.common.config, f.crawl.contentSelector)
		return exitCodeFor(err)
	}
	defer p.close()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	res, err := generate(ctx, env, p)
	if err != nil {
		reportError(logger, err, f.common.config, p.input.Crawl.ContentSelector)
		return exitCodeFor(err)
	}

	if !f.common.quiet {
		printSummary(env.Stdout, res, p.input.HTMLPath)
	}
	return ExitSuccess
}

// generate creates a generator, runs it once and releases the browser.
func generate(ctx context.Context, env *Environment, p *runParams) (res *docs2pdf.Result, err error) {
	gen, err := env.NewGenerator(p.opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := gen.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return gen.Generate(ctx, p.input)
}

// reportError logs a fatal error with a hint. Verbose mode also logs
// each wrapped cause.
func reportError(logger *log.Logger, err error, configName, contentSelector string) {
	logger.Error(err.Error() + hintFor(err, configName, contentSelector))
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		logger.Debug("caused by", "err", cause)
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName, contentSelector string) string {
	switch {
	case errors.Is(err, docs2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, docs2pdf.ErrNavigationTimeout):
		return hints.ForNavigationTimeout()
	case errors.Is(err, docs2pdf.ErrNavigation):
		return hints.ForUnreachable()
	case errors.Is(err, docs2pdf.ErrNoContent), errors.Is(err, docs2pdf.ErrEntryPointSkipped):
		return hints.ForNoContent(contentSelector)
	case errors.Is(err, docs2pdf.ErrWriteFailure):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, docs2pdf.ErrUnknownHighlight):
		return hints.ForHighlightStyle(docs2pdf.HighlightStyles())
	default:
		return ""
	}
}

// printSummary prints the written files and per-page problems.
func printSummary(w io.Writer, res *docs2pdf.Result, htmlPath string) {
	if res.Path != "" {
		fmt.Fprintf(w, "Wrote %s (%d pages)\n", res.Path, res.Pages)
	}
	if htmlPath != "" {
		fmt.Fprintf(w, "Wrote %s\n", htmlPath)
	}
	if n := len(res.Failures); n > 0 {
		fmt.Fprintf(w, "%d page(s) could not be opened:\n", n)
		for _, fl := range res.Failures {
			fmt.Fprintf(w, "  %s: %v\n", fl.URL, fl.Err)
		}
	}
	if n := len(res.Skipped); n > 0 {
		fmt.Fprintf(w, "%d page(s) skipped:\n", n)
		for _, s := range res.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", s.URL, s.Reason)
		}
	}
}
