package docs2pdf

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-docs2pdf/internal/pipeline"
)

// Default limits.
const (
	// DefaultTimeout bounds a whole Generate run.
	DefaultTimeout = 30 * time.Minute
	// DefaultProtocolTimeout bounds each browser control call (navigation,
	// HTML capture, PDF print). The render wait is not counted against it.
	DefaultProtocolTimeout = 180 * time.Second
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout         time.Duration
	protocolTimeout time.Duration
	browserArgs     []string
	assetPath       string
	highlightStyle  string
	logger          *log.Logger
}

// WithTimeout bounds a whole Generate run.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docs2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithProtocolTimeout bounds each browser control call separately:
// navigation, HTML capture, page load and PDF print. The render wait runs
// outside these deadlines.
// Panics if d <= 0.
func WithProtocolTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docs2pdf: WithProtocolTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.protocolTimeout = d
	}
}

// WithBrowserArgs adds Chrome command-line flags, e.g. "--no-sandbox" or
// "--window-size=1280,800".
func WithBrowserArgs(args ...string) Option {
	return func(c *Converter) {
		c.cfg.browserArgs = append(c.cfg.browserArgs, args...)
	}
}

// WithAssetPath overrides the embedded stylesheet and templates with files
// from dir (styles/default.css, templates/cover.html, templates/toc.html).
// Missing files fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithHighlightStyle selects the chroma style used for code blocks.
// "none" disables highlighting.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// HighlightStyles lists the names accepted by WithHighlightStyle, besides "none".
func HighlightStyles() []string {
	return pipeline.StyleNames()
}

// WithLogger sets the logger for progress and per-page diagnostics.
// The default logger discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}
