package main

// Notes:
// - newLogger: we test the level chosen for quiet/verbose and that output
//   goes to the given writer.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		want           log.Level
	}{
		{"default", false, false, log.InfoLevel},
		{"quiet", true, false, log.ErrorLevel},
		{"verbose", false, true, log.DebugLevel},
		{"quiet wins", true, true, log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := newLogger(&bytes.Buffer{}, tt.quiet, tt.verbose).GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_WritesPrefixedLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, false, false).Info("pdf written", "path", "out.pdf")

	out := buf.String()
	for _, want := range []string{"docs2pdf", "pdf written", "path=out.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line should contain %q, got %q", want, out)
		}
	}
}
