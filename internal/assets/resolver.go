package assets

import "errors"

// Resolver reads assets from an optional custom directory, falling back to
// the embedded copies for files the directory does not provide.
type Resolver struct {
	custom   Loader // nil without a custom directory
	embedded Loader
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)

// NewResolver returns a Resolver. An empty customDir uses embedded assets only.
func NewResolver(customDir string) (*Resolver, error) {
	r := &Resolver{embedded: EmbeddedLoader{}}
	if customDir == "" {
		return r, nil
	}
	fsLoader, err := NewFilesystemLoader(customDir)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.load(func(l Loader) (string, error) { return l.LoadStyle(name) })
}

func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.load(func(l Loader) (string, error) { return l.LoadTemplate(name) })
}

// HasCustom reports whether a custom directory is configured.
func (r *Resolver) HasCustom() bool {
	return r.custom != nil
}

// load falls back to embedded assets only for not-found errors; validation
// and read errors from the custom directory are returned as is.
func (r *Resolver) load(fn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return fn(r.embedded)
	}
	content, err := fn(r.custom)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}
	return fn(r.embedded)
}
