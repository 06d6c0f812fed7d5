package main

// Notes:
// - runGenerate: we test the merged Input handed to the Generator, exit codes
//   for generator errors, hints, and the summary. Docs directory tests start
//   a real loopback server but never a browser.
// - hintFor: we test which sentinel errors get a hint.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/config"
)

var baseArgs = []string{
	"--docsEntryPoint", "https://docs.example.com/intro",
	"--contentSelector", "article",
	"--paginationSelector", "a.next",
}

func withArgs(extra ...string) []string {
	args := append([]string{"docs2pdf"}, baseArgs...)
	return append(args, extra...)
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Flags - Flags become the library input
// ---------------------------------------------------------------------------

func TestRunGenerate_Flags(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "book.pdf")
	gen := &fakeGenerator{}
	env, stdout, stderr := testEnv(gen)

	code := runMain(withArgs(
		"-o", out,
		"--excludeSelectors", ".ads,.footer",
		"--excludePaths", "/blog,/docs/old/**",
		"--waitForRender", "1500",
		"--protocolTimeout", "90s",
		"--coverTitle", "Handbook",
		"--tocTitle", "Contents",
		"--paperFormat", "Letter",
		"--pdfMargin", "1cm,2cm",
		"--openDetail=false",
		"--restrictPaths",
		"--html",
	), env)

	if code != ExitSuccess {
		t.Fatalf("code = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	in := gen.lastInput(t)

	if got := in.Crawl.EntryPoints; len(got) != 1 || got[0] != "https://docs.example.com/intro" {
		t.Errorf("EntryPoints = %v", got)
	}
	if got := in.Crawl.ExcludeSelectors; len(got) != 2 || got[1] != ".footer" {
		t.Errorf("ExcludeSelectors = %v", got)
	}
	if got := in.Crawl.ExcludePaths; len(got) != 2 || got[1] != "/docs/old/**" {
		t.Errorf("ExcludePaths = %v", got)
	}
	if in.Crawl.WaitForRender != 1500*time.Millisecond {
		t.Errorf("WaitForRender = %v, want 1.5s", in.Crawl.WaitForRender)
	}
	if !in.Crawl.RestrictPaths {
		t.Error("RestrictPaths should be set")
	}
	if in.Compose.Cover == nil || in.Compose.Cover.Title != "Handbook" {
		t.Errorf("Cover = %+v", in.Compose.Cover)
	}
	if in.Compose.TOC == nil || in.Compose.TOC.Title != "Contents" {
		t.Errorf("TOC = %+v", in.Compose.TOC)
	}
	if in.Compose.Page.Format != "Letter" || in.Compose.Page.Margin != "1cm,2cm" {
		t.Errorf("Page = %+v", in.Compose.Page)
	}
	if in.Compose.OpenDetail {
		t.Error("OpenDetail should be false")
	}
	if in.OutputPath != out {
		t.Errorf("OutputPath = %q, want %q", in.OutputPath, out)
	}
	if want := strings.TrimSuffix(out, ".pdf") + ".html"; in.HTMLPath != want {
		t.Errorf("HTMLPath = %q, want %q", in.HTMLPath, want)
	}
	// Logger and protocol timeout.
	if gen.opts != 2 {
		t.Errorf("options = %d, want 2", gen.opts)
	}
	if !gen.closed {
		t.Error("generator should be closed")
	}
	if !strings.Contains(stdout.String(), "Wrote "+out) {
		t.Errorf("stdout should report the PDF, got %q", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Defaults - Built-in defaults
// ---------------------------------------------------------------------------

func TestRunGenerate_Defaults(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{}
	env, _, _ := testEnv(gen)

	if code := runMain(withArgs(), env); code != ExitSuccess {
		t.Fatalf("code = %d, want %d", code, ExitSuccess)
	}
	in := gen.lastInput(t)

	if in.OutputPath != DefaultOutput {
		t.Errorf("OutputPath = %q, want %q", in.OutputPath, DefaultOutput)
	}
	if in.HTMLPath != "" {
		t.Errorf("HTMLPath = %q, want empty", in.HTMLPath)
	}
	if !in.Compose.OpenDetail {
		t.Error("OpenDetail should default to true")
	}
	if in.Compose.TOC == nil {
		t.Error("TOC should be enabled by default")
	}
	if in.Compose.Cover != nil {
		t.Errorf("Cover = %+v, want nil", in.Compose.Cover)
	}
	if gen.opts != 1 {
		t.Errorf("options = %d, want 1 (logger only)", gen.opts)
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_ConfigFile - Flags override the config file
// ---------------------------------------------------------------------------

func TestRunGenerate_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yaml := `crawl:
  entryPoints:
    - https://docs.example.com/a
    - https://docs.example.com/b
  contentSelector: main
  paginationSelector: a.next
output:
  pdf: from-config.pdf
toc:
  title: From config
openDetail: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{}
	env, _, stderr := testEnv(gen)

	code := runMain([]string{"docs2pdf", "-c", path, "--contentSelector", "article", "--disableTOC"}, env)
	if code != ExitSuccess {
		t.Fatalf("code = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	in := gen.lastInput(t)

	if len(in.Crawl.EntryPoints) != 2 {
		t.Errorf("EntryPoints = %v, want config values", in.Crawl.EntryPoints)
	}
	if in.Crawl.ContentSelector != "article" {
		t.Errorf("ContentSelector = %q, want flag value", in.Crawl.ContentSelector)
	}
	if in.Crawl.PaginationSelector != "a.next" {
		t.Errorf("PaginationSelector = %q, want config value", in.Crawl.PaginationSelector)
	}
	if in.OutputPath != "from-config.pdf" {
		t.Errorf("OutputPath = %q", in.OutputPath)
	}
	if in.Compose.TOC != nil {
		t.Errorf("TOC = %+v, want disabled by flag", in.Compose.TOC)
	}
	if in.Compose.OpenDetail {
		t.Error("OpenDetail should come from config")
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Docusaurus - Preset and docs directory
// ---------------------------------------------------------------------------

func TestRunGenerate_Docusaurus(t *testing.T) {
	t.Parallel()

	t.Run("v2 preset by default", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{}
		env, _, _ := testEnv(gen)

		code := runMain([]string{"docs2pdf", "d", "--docsEntryPoint", "https://docs.example.com/intro"}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d", code)
		}
		in := gen.lastInput(t)
		if in.Crawl.ContentSelector != "article" {
			t.Errorf("ContentSelector = %q", in.Crawl.ContentSelector)
		}
		if in.Crawl.PaginationSelector != "a.pagination-nav__link.pagination-nav__link--next" {
			t.Errorf("PaginationSelector = %q", in.Crawl.PaginationSelector)
		}
	})

	t.Run("v1 preset keeps flag selectors", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{}
		env, _, _ := testEnv(gen)

		code := runMain([]string{"docs2pdf", "docusaurus", "--version", "1",
			"--docsEntryPoint", "https://docs.example.com/intro", "--contentSelector", "main"}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d", code)
		}
		in := gen.lastInput(t)
		if in.Crawl.ContentSelector != "main" {
			t.Errorf("ContentSelector = %q, want flag value", in.Crawl.ContentSelector)
		}
		if in.Crawl.PaginationSelector != ".docs-prevnext > a.docs-next" {
			t.Errorf("PaginationSelector = %q", in.Crawl.PaginationSelector)
		}
		if !strings.Contains(in.Compose.CSS, ".navPusher") {
			t.Errorf("CSS = %q, want preset CSS", in.Compose.CSS)
		}
	})

	t.Run("unknown version", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{}
		env, _, _ := testEnv(gen)

		code := runMain([]string{"docs2pdf", "d", "--version", "3"}, env)
		if code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("docs directory resolves entry points", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
			t.Fatal(err)
		}
		gen := &fakeGenerator{}
		env, _, stderr := testEnv(gen)

		code := runMain([]string{"docs2pdf", "d", "--docsDir", dir,
			"--docsEntryPoint", "docs/intro,/docs/api,https://other.example.com/x"}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d\nstderr: %s", code, stderr.String())
		}
		eps := gen.lastInput(t).Crawl.EntryPoints
		if len(eps) != 3 {
			t.Fatalf("EntryPoints = %v", eps)
		}
		for i, suffix := range []string{"/docs/intro", "/docs/api"} {
			if !strings.HasPrefix(eps[i], "http://127.0.0.1:") || !strings.HasSuffix(eps[i], suffix) {
				t.Errorf("EntryPoints[%d] = %q, want local URL ending in %s", i, eps[i], suffix)
			}
		}
		if eps[2] != "https://other.example.com/x" {
			t.Errorf("EntryPoints[2] = %q, want absolute URL kept", eps[2])
		}
	})

	t.Run("docs directory defaults to server root", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{}
		env, _, _ := testEnv(gen)

		code := runMain([]string{"docs2pdf", "d", "--docsDir", t.TempDir()}, env)
		if code != ExitSuccess {
			t.Fatalf("code = %d", code)
		}
		eps := gen.lastInput(t).Crawl.EntryPoints
		if len(eps) != 1 || !strings.HasSuffix(eps[0], "/") {
			t.Errorf("EntryPoints = %v, want server root", eps)
		}
	})

	t.Run("missing docs directory", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{}
		env, _, _ := testEnv(gen)

		code := runMain([]string{"docs2pdf", "d", "--docsDir", filepath.Join(t.TempDir(), "missing")}, env)
		if code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Errors - Exit codes and hints
// ---------------------------------------------------------------------------

func TestRunGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		genErr     error
		wantCode   int
		wantStderr string
	}{
		{
			name:       "navigation timeout",
			args:       withArgs(),
			genErr:     fmt.Errorf("opening entry point: %w", docs2pdf.ErrNavigationTimeout),
			wantCode:   ExitBrowser,
			wantStderr: "--protocolTimeout",
		},
		{
			name:       "no content",
			args:       withArgs(),
			genErr:     docs2pdf.ErrNoContent,
			wantCode:   ExitGeneral,
			wantStderr: "no page matched --contentSelector article",
		},
		{
			name:       "write failure",
			args:       withArgs(),
			genErr:     fmt.Errorf("%w: disk full", docs2pdf.ErrWriteFailure),
			wantCode:   ExitIO,
			wantStderr: "writable",
		},
		{
			name:       "unknown highlight style",
			args:       withArgs("--highlightStyle", "nope"),
			genErr:     fmt.Errorf("%w: nope", docs2pdf.ErrUnknownHighlight),
			wantCode:   ExitUsage,
			wantStderr: "available styles:",
		},
		{
			name:       "bad wait duration",
			args:       withArgs("--waitForRender", "soon"),
			wantCode:   ExitUsage,
			wantStderr: "--waitForRender",
		},
		{
			name:       "negative protocol timeout",
			args:       withArgs("--protocolTimeout", "-5"),
			wantCode:   ExitUsage,
			wantStderr: "must not be negative",
		},
		{
			name:       "zero run timeout",
			args:       withArgs("--timeout", "0"),
			wantCode:   ExitUsage,
			wantStderr: "--timeout must be positive",
		},
		{
			name:       "missing preface",
			args:       withArgs("--preface", "/nonexistent/preface.md"),
			wantCode:   ExitIO,
			wantStderr: "preface",
		},
		{
			name:       "missing config name",
			args:       withArgs("-c", "docs2pdf-test-missing-config"),
			wantCode:   ExitUsage,
			wantStderr: "hint: use --config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := &fakeGenerator{err: tt.genErr}
			env, _, stderr := testEnv(gen)

			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestRunGenerate_GeneratorSetupFails(t *testing.T) {
	t.Parallel()

	var stdout, stderr strings.Builder
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		NewGenerator: func(...docs2pdf.Option) (Generator, error) {
			return nil, fmt.Errorf("%w: bad dir", docs2pdf.ErrInvalidAssetPath)
		},
	}

	if code := runMain(withArgs(), env); code != ExitUsage {
		t.Errorf("code = %d, want %d", code, ExitUsage)
	}
}

func TestRunGenerate_CloseErrorReported(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{closeErr: fmt.Errorf("%w: kill failed", docs2pdf.ErrBrowserConnect)}
	env, _, _ := testEnv(gen)

	if code := runMain(withArgs(), env); code != ExitBrowser {
		t.Errorf("code = %d, want %d", code, ExitBrowser)
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate_Summary - Output on success
// ---------------------------------------------------------------------------

func TestRunGenerate_Summary(t *testing.T) {
	t.Parallel()

	result := &docs2pdf.Result{
		Path:     "out.pdf",
		Pages:    4,
		Failures: []docs2pdf.Failure{{URL: "https://docs.example.com/gone", Err: errors.New("404")}},
		Skipped:  []docs2pdf.Skipped{{URL: "https://docs.example.com/empty", Reason: "no content"}},
	}

	t.Run("lists problems", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{result: result}
		env, stdout, _ := testEnv(gen)

		if code := runMain(withArgs(), env); code != ExitSuccess {
			t.Fatalf("code = %d", code)
		}
		for _, want := range []string{"Wrote out.pdf (4 pages)", "1 page(s) could not be opened", "/gone: 404", "/empty: no content"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout should contain %q, got %q", want, stdout.String())
			}
		}
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		t.Parallel()
		gen := &fakeGenerator{result: result}
		env, stdout, stderr := testEnv(gen)

		if code := runMain(withArgs("-q"), env); code != ExitSuccess {
			t.Fatalf("code = %d", code)
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("quiet output: stdout %q, stderr %q", stdout.String(), stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints per error
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", docs2pdf.ErrNavigationTimeout, "--protocolTimeout"},
		{"unreachable", docs2pdf.ErrNavigation, "--baseUrl"},
		{"entry point skipped", docs2pdf.ErrEntryPointSkipped, "--contentSelector main"},
		{"config not found", config.ErrConfigNotFound, "use --config"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := hintFor(tt.err, "site", "main")
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
