package crawl

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

const globMeta = "*?[{"

type urlPattern struct {
	raw  string
	glob glob.Glob // nil for literal patterns
}

// Matcher decides whether a URL is excluded from the document.
//
// URL patterns match the full normalized URL: literal patterns compare for
// equality, patterns containing glob metacharacters use gobwas/glob with
// '/' as separator. Path patterns match the URL path: literal patterns
// match as prefix, glob patterns match the whole path.
type Matcher struct {
	urls  []urlPattern
	paths []urlPattern
}

// NewMatcher compiles exclude URL and exclude path patterns.
// Empty patterns are ignored.
func NewMatcher(excludeURLs, excludePaths []string) (*Matcher, error) {
	m := &Matcher{}
	for _, raw := range excludeURLs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := compilePattern(raw)
		if err != nil {
			return nil, err
		}
		if p.glob == nil {
			if norm, err := Normalize(raw); err == nil {
				p.raw = norm
			}
		}
		m.urls = append(m.urls, p)
	}
	for _, raw := range excludePaths {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := compilePattern(raw)
		if err != nil {
			return nil, err
		}
		m.paths = append(m.paths, p)
	}
	return m, nil
}

func compilePattern(raw string) (urlPattern, error) {
	if !strings.ContainsAny(raw, globMeta) {
		return urlPattern{raw: raw}, nil
	}
	g, err := glob.Compile(raw, '/')
	if err != nil {
		return urlPattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
	}
	return urlPattern{raw: raw, glob: g}, nil
}

// Excluded reports whether the normalized URL matches any pattern.
// A nil Matcher excludes nothing.
func (m *Matcher) Excluded(normalized string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.urls {
		if p.glob != nil && p.glob.Match(normalized) {
			return true
		}
		if p.glob == nil && p.raw == normalized {
			return true
		}
	}
	path := pathOf(normalized)
	for _, p := range m.paths {
		if p.glob != nil && p.glob.Match(path) {
			return true
		}
		if p.glob == nil && underPath(path, p.raw) {
			return true
		}
	}
	return false
}

// underPath reports whether path is prefix or lies below it. Matching stops
// at segment boundaries, so "/docs/api" does not cover "/docs/api-guide".
func underPath(path, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
