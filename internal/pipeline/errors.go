package pipeline

import "errors"

// Sentinel errors for composition.
var (
	ErrInvalidTemplate = errors.New("invalid template")
	ErrCoverRender     = errors.New("cover template rendering failed")
	ErrTOCRender       = errors.New("toc template rendering failed")
	ErrHTMLConversion  = errors.New("markdown conversion failed")
	ErrLinkRewrite     = errors.New("link rewriting failed")
	ErrUnknownStyle    = errors.New("unknown highlight style")
)
