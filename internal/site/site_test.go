package site

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStart_ServesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "docs", "intro"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "intro", "index.html"), []byte("<article>hi</article>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Start(dir)
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	defer func() { _ = s.Close(context.Background()) }()

	if !strings.HasPrefix(s.URL(), "http://127.0.0.1:") || !strings.HasSuffix(s.URL(), "/") {
		t.Errorf("URL() = %q", s.URL())
	}

	resp, err := http.Get(s.URL() + "docs/intro/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "<article>hi</article>" {
		t.Errorf("GET = %d %q", resp.StatusCode, body)
	}
}

func TestStart_InvalidDir(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, dir := range []string{filepath.Join(t.TempDir(), "missing"), file} {
		if _, err := Start(dir); !errors.Is(err, ErrInvalidDir) {
			t.Errorf("Start(%q) error = %v, want ErrInvalidDir", dir, err)
		}
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	s, err := Start(t.TempDir())
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if _, err := http.Get(s.URL()); err == nil {
		t.Error("server still answering after Close()")
	}
}
