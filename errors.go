package docs2pdf

import (
	"errors"
	"fmt"

	"github.com/alnah/go-docs2pdf/internal/crawl"
	"github.com/alnah/go-docs2pdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrClosed         = errors.New("converter is closed")

	// Crawl errors, re-exported for errors.Is checks by callers.
	ErrNavigation        = crawl.ErrNavigation
	ErrNavigationTimeout = crawl.ErrNavigationTimeout
	ErrNoEntryPoints     = crawl.ErrNoEntryPoints
	ErrNoContent         = crawl.ErrNoContent
	ErrEntryPointSkipped = crawl.ErrEntryPointSkipped
	ErrInvalidURL        = crawl.ErrInvalidURL
	ErrInvalidSelector   = crawl.ErrInvalidSelector
	ErrInvalidPattern    = crawl.ErrInvalidPattern

	// Crawl config validation errors.
	ErrEmptySelector     = errors.New("selector cannot be empty")
	ErrInvalidBaseURL    = errors.New("invalid base URL")
	ErrInvalidWaitPeriod = errors.New("invalid wait for render")

	// Page settings validation errors.
	ErrInvalidPaperFormat = errors.New("invalid paper format")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Compose errors.
	ErrCompose          = errors.New("compose failed")
	ErrInvalidTemplate  = pipeline.ErrInvalidTemplate
	ErrWriteFailure     = errors.New("failed to write output")
	ErrUnknownHighlight = pipeline.ErrUnknownStyle
	ErrEmptyRecords     = errors.New("no records to compose")
	ErrEmptyOutputPath  = errors.New("output path cannot be empty")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrPrefaceRead      = errors.New("failed to read preface")
	ErrCoverImage       = errors.New("invalid cover image")
	ErrInvalidTOCTitle  = errors.New("invalid TOC title")
	ErrInvalidPreset    = errors.New("invalid preset version")
)

// ComposeErrorKind classifies composition failures.
type ComposeErrorKind int

// Compose failure kinds.
const (
	RenderFailure ComposeErrorKind = iota + 1
	InvalidTemplate
	WriteFailure
)

func (k ComposeErrorKind) String() string {
	switch k {
	case RenderFailure:
		return "render failure"
	case InvalidTemplate:
		return "invalid template"
	case WriteFailure:
		return "write failure"
	default:
		return "unknown"
	}
}

// ComposeError reports a failure while building or writing the document.
// No output file is left behind when it is returned.
type ComposeError struct {
	Kind ComposeErrorKind
	Err  error
}

func newComposeError(kind ComposeErrorKind, err error) *ComposeError {
	return &ComposeError{Kind: kind, Err: err}
}

func (e *ComposeError) Error() string {
	return fmt.Sprintf("compose: %s: %v", e.Kind, e.Err)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// Is matches ErrCompose for every kind, plus ErrInvalidTemplate and
// ErrWriteFailure for their kinds.
func (e *ComposeError) Is(target error) bool {
	switch target {
	case ErrCompose:
		return true
	case ErrInvalidTemplate:
		return e.Kind == InvalidTemplate
	case ErrWriteFailure:
		return e.Kind == WriteFailure
	}
	return false
}

// classifyCompose wraps a pipeline error, keeping template errors apart.
func classifyCompose(err error) *ComposeError {
	var ce *ComposeError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, pipeline.ErrInvalidTemplate) {
		return newComposeError(InvalidTemplate, err)
	}
	return newComposeError(RenderFailure, err)
}
