package crawl

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for crawl operations.
var (
	ErrNavigation        = errors.New("navigation failed")
	ErrNavigationTimeout = errors.New("navigation timed out")
	ErrSelectorNotFound  = errors.New("selector not found")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrNoEntryPoints     = errors.New("no entry points")
	ErrNoContent         = errors.New("no content extracted")
	ErrEntryPointSkipped = errors.New("entry point produced no content")
	ErrInvalidSelector   = errors.New("invalid selector")
	ErrInvalidPattern    = errors.New("invalid exclude pattern")
)

// NavigationErrorKind classifies navigation failures.
type NavigationErrorKind int

// Navigation failure kinds.
const (
	Unreachable NavigationErrorKind = iota + 1
	Timeout
)

func (k NavigationErrorKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// NavigationError reports a page that could not be opened.
type NavigationError struct {
	URL  string
	Kind NavigationErrorKind
	Err  error
}

// NewNavigationError classifies err and wraps it for url.
// Deadline errors become Timeout, everything else Unreachable.
func NewNavigationError(url string, err error) *NavigationError {
	kind := Unreachable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = Timeout
	}
	return &NavigationError{URL: url, Kind: kind, Err: err}
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigating to %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Is matches ErrNavigation for every kind and ErrNavigationTimeout for timeouts.
func (e *NavigationError) Is(target error) bool {
	switch target {
	case ErrNavigation:
		return true
	case ErrNavigationTimeout:
		return e.Kind == Timeout
	}
	return false
}
