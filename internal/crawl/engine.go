package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Config controls traversal.
type Config struct {
	// EntryPoints seed the frontier in order. Later entry points continue
	// the document once the previous chain is exhausted.
	EntryPoints []string
	// RestrictPaths disables next-link following: only entry points are visited.
	RestrictPaths bool
	// StrictEntryPoints makes a skipped entry point fatal.
	StrictEntryPoints bool
}

// Failure records a page that could not be opened.
type Failure struct {
	URL string
	Err error
}

// Skipped records a page that was opened but produced no record.
type Skipped struct {
	URL    string
	Reason SkipReason
}

// Result is the ordered output of a traversal.
type Result struct {
	Records  []Record
	Failures []Failure
	Skipped  []Skipped
	Visited  []string
}

// Engine drives the crawl over a single Renderer.
type Engine struct {
	renderer  Renderer
	extractor *Extractor
	links     *LinkDiscoverer
	cfg       Config
	logger    *log.Logger
}

// NewEngine wires the traversal components. A nil logger discards output.
func NewEngine(r Renderer, ex *Extractor, links *LinkDiscoverer, cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{renderer: r, extractor: ex, links: links, cfg: cfg, logger: logger}
}

type pending struct {
	url   string
	entry bool
	first bool
}

// Run visits pages until the frontier is empty and returns the records in
// first-visit order.
//
// Each entry point's next-link chain is followed to exhaustion before the
// next entry point. A navigation failure on the first entry point is fatal,
// later failures are recorded in Result.Failures. Run returns ErrNoContent
// when no page produced a record.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if len(e.cfg.EntryPoints) == 0 {
		return nil, ErrNoEntryPoints
	}

	frontier := make([]pending, 0, len(e.cfg.EntryPoints))
	for i, raw := range e.cfg.EntryPoints {
		u, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		frontier = append(frontier, pending{url: u, entry: true, first: i == 0})
	}

	visited := NewVisitedSet()
	result := &Result{}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := frontier[0]
		frontier = frontier[1:]

		if !visited.Add(item.url) {
			e.logger.Debug("already visited", "url", item.url)
			continue
		}

		e.logger.Debug("visiting", "url", item.url)
		doc, err := e.renderer.Open(ctx, item.url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			navErr := asNavigationError(item.url, err)
			if item.first {
				return nil, navErr
			}
			e.logger.Warn("page failed", "url", item.url, "err", navErr.Err)
			result.Failures = append(result.Failures, Failure{URL: item.url, Err: navErr})
			continue
		}

		rec, reason := e.extractor.Extract(doc)
		if reason == SkipNone {
			rec.Ordinal = len(result.Records) + 1
			result.Records = append(result.Records, *rec)
			e.logger.Debug("extracted", "url", item.url, "ordinal", rec.Ordinal, "title", rec.Title)
		} else {
			if item.entry && e.cfg.StrictEntryPoints {
				return nil, fmt.Errorf("%w: %s: %s", ErrEntryPointSkipped, item.url, reason)
			}
			e.logger.Warn("page skipped", "url", item.url, "reason", reason.String())
			result.Skipped = append(result.Skipped, Skipped{URL: item.url, Reason: reason})
		}

		if e.cfg.RestrictPaths {
			continue
		}
		if next, ok := e.links.NextLink(doc, visited); ok {
			e.logger.Debug("next link", "from", item.url, "url", next)
			frontier = append([]pending{{url: next}}, frontier...)
		}
	}

	result.Visited = visited.List()
	e.logger.Debug("frontier empty", "visited", visited.Len(), "records", len(result.Records))
	if len(result.Records) == 0 {
		return nil, ErrNoContent
	}
	return result, nil
}

func asNavigationError(url string, err error) *NavigationError {
	var navErr *NavigationError
	if errors.As(err, &navErr) {
		return navErr
	}
	return NewNavigationError(url, err)
}
