package main

import (
	"context"
	"io"
	"os"

	docs2pdf "github.com/alnah/go-docs2pdf"
)

// Generator runs a full crawl-and-compose and releases its browser on Close.
type Generator interface {
	Generate(ctx context.Context, input docs2pdf.Input) (*docs2pdf.Result, error)
	Close() error
}

// Compile-time interface check.
var _ Generator = (*docs2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...docs2pdf.Option) (Generator, error)
}

// DefaultEnv returns the production environment backed by a real Converter.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...docs2pdf.Option) (Generator, error) {
			return docs2pdf.NewConverter(opts...)
		},
	}
}
