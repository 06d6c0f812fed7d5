package assets

import "fmt"

// Asset names.
const (
	DefaultStyle  = "default"
	CoverTemplate = "cover"
	TOCTemplate   = "toc"
)

// Bundle holds the assets needed to compose one document.
type Bundle struct {
	CSS   string
	Cover string
	TOC   string
}

// Load reads the stylesheet and both templates from l.
func Load(l Loader) (*Bundle, error) {
	css, err := l.LoadStyle(DefaultStyle)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	cover, err := l.LoadTemplate(CoverTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading cover template: %w", err)
	}
	toc, err := l.LoadTemplate(TOCTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading toc template: %w", err)
	}
	return &Bundle{CSS: css, Cover: cover, TOC: toc}, nil
}
