package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/config"
	"github.com/alnah/go-docs2pdf/internal/site"
)

// Exit codes for the docs2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Output or input file errors
	ExitBrowser = 4 // Browser, Chrome or navigation errors
)

// CLI errors.
var (
	ErrUsage       = errors.New("usage error")
	ErrInvalidFlag = errors.New("invalid flag value")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docs2pdf.ErrBrowserConnect) ||
		errors.Is(err, docs2pdf.ErrPageCreate) ||
		errors.Is(err, docs2pdf.ErrPDFGeneration) ||
		errors.Is(err, docs2pdf.ErrNavigation) ||
		errors.Is(err, docs2pdf.ErrNavigationTimeout) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, docs2pdf.ErrWriteFailure) ||
		errors.Is(err, docs2pdf.ErrPrefaceRead) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, site.ErrInvalidDir) ||
		errors.Is(err, docs2pdf.ErrNoEntryPoints) ||
		errors.Is(err, docs2pdf.ErrInvalidURL) ||
		errors.Is(err, docs2pdf.ErrInvalidSelector) ||
		errors.Is(err, docs2pdf.ErrInvalidPattern) ||
		errors.Is(err, docs2pdf.ErrEmptySelector) ||
		errors.Is(err, docs2pdf.ErrInvalidBaseURL) ||
		errors.Is(err, docs2pdf.ErrInvalidWaitPeriod) ||
		errors.Is(err, docs2pdf.ErrInvalidPaperFormat) ||
		errors.Is(err, docs2pdf.ErrInvalidMargin) ||
		errors.Is(err, docs2pdf.ErrInvalidTemplate) ||
		errors.Is(err, docs2pdf.ErrUnknownHighlight) ||
		errors.Is(err, docs2pdf.ErrEmptyOutputPath) ||
		errors.Is(err, docs2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, docs2pdf.ErrCoverImage) ||
		errors.Is(err, docs2pdf.ErrInvalidTOCTitle) ||
		errors.Is(err, docs2pdf.ErrInvalidPreset) {
		return ExitUsage
	}

	return ExitGeneral
}
