package docs2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docs2pdf/internal/crawl"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/process"
)

// session owns one headless browser. It is the only component that
// navigates; one navigation is in flight at a time.
type session interface {
	Open(ctx context.Context, target string, nav navigation) (crawl.Document, error)
	PrintPDF(ctx context.Context, htmlPath string, opts *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

// navigation holds the per-crawl navigation settings.
type navigation struct {
	BaseURL       string
	WaitForRender time.Duration
}

// sessionRenderer adapts a session to crawl.Renderer for one crawl.
type sessionRenderer struct {
	s   session
	nav navigation
}

var (
	_ session        = (*rodSession)(nil)
	_ crawl.Renderer = sessionRenderer{}
)

func (r sessionRenderer) Open(ctx context.Context, target string) (crawl.Document, error) {
	return r.s.Open(ctx, target, r.nav)
}

// rodSession implements session with go-rod.
// The browser is launched lazily on first use.
type rodSession struct {
	mu              sync.Mutex
	protocolTimeout time.Duration
	args            []string
	logger          *log.Logger

	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodSession(protocolTimeout time.Duration, args []string, logger *log.Logger) *rodSession {
	return &rodSession{protocolTimeout: protocolTimeout, args: args, logger: logger}
}

// ensureBrowser launches and connects the browser. Callers hold s.mu.
func (s *rodSession) ensureBrowser() error {
	if s.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox() {
		l = l.NoSandbox(true)
	}
	for _, arg := range s.args {
		name, value, ok := splitBrowserArg(arg)
		if !ok {
			continue
		}
		if value == "" {
			l = l.Set(flags.Flag(name))
		} else {
			l = l.Set(flags.Flag(name), value)
		}
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		process.KillTree(l.PID())
		l.Cleanup()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s.launcher, s.browser = l, b
	s.logger.Debug("browser launched", "pid", l.PID())
	return nil
}

// noSandbox reports whether the Chrome sandbox must be disabled (CI,
// containers, or explicit ROD_NO_SANDBOX).
func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// splitBrowserArg turns "--name=value" into ("name", "value").
func splitBrowserArg(arg string) (name, value string, ok bool) {
	arg = strings.TrimLeft(strings.TrimSpace(arg), "-")
	if arg == "" {
		return "", "", false
	}
	name, value, _ = strings.Cut(arg, "=")
	if name == "" {
		return "", "", false
	}
	return name, value, true
}

// Open navigates to target, waits for DOMContentLoaded and the render wait,
// and returns the rendered DOM. The document keeps target as its URL even
// when the navigation origin was rewritten to nav.BaseURL.
func (s *rodSession) Open(ctx context.Context, target string, nav navigation) (crawl.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureBrowser(); err != nil {
		return nil, err
	}

	navURL, err := crawl.RewriteBase(target, nav.BaseURL)
	if err != nil {
		return nil, crawl.NewNavigationError(target, err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, crawl.NewNavigationError(target, fmt.Errorf("%w: %v", ErrPageCreate, err))
	}
	defer func() { _ = page.Close() }()

	content, err := renderPage(ctx, rodPage{page}, navURL, s.protocolTimeout, nav.WaitForRender)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crawl.NewNavigationError(target, err)
	}
	s.logger.Debug("page rendered", "url", target, "navigated", navURL, "bytes", len(content))
	return crawl.NewHTMLDocument(target, content)
}

// pageControl is the subset of page calls used to capture a page.
// Each call is bounded by the context it receives.
type pageControl interface {
	Navigate(ctx context.Context, target string) error
	HTML(ctx context.Context) (string, error)
}

// renderPage navigates, waits for render and captures the HTML. Navigate
// and HTML each get their own protocolTimeout; the render wait runs outside
// any protocol deadline and is bounded only by ctx.
func renderPage(ctx context.Context, pc pageControl, target string, protocolTimeout, renderWait time.Duration) (string, error) {
	navCtx, cancel := context.WithTimeout(ctx, protocolTimeout)
	err := pc.Navigate(navCtx, target)
	cancel()
	if err != nil {
		return "", err
	}

	if renderWait > 0 {
		timer := time.NewTimer(renderWait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		}
	}

	htmlCtx, cancel := context.WithTimeout(ctx, protocolTimeout)
	defer cancel()
	return pc.HTML(htmlCtx)
}

// rodPage implements pageControl with a go-rod page.
type rodPage struct {
	page *rod.Page
}

// Navigate loads target and waits for DOMContentLoaded.
func (r rodPage) Navigate(ctx context.Context, target string) error {
	p := r.page.Context(ctx)
	wait := p.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := p.Navigate(target); err != nil {
		return err
	}
	wait()
	return ctx.Err()
}

func (r rodPage) HTML(ctx context.Context) (string, error) {
	return r.page.Context(ctx).HTML()
}

// PrintPDF loads a local HTML file and prints it to PDF.
func (s *rodSession) PrintPDF(ctx context.Context, htmlPath string, opts *proto.PagePrintToPDF) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureBrowser(); err != nil {
		return nil, err
	}

	fileURL, err := fileutil.ToFileURL(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	lp := page.Context(ctx).Timeout(s.protocolTimeout)
	err = lp.WaitLoad()
	lp.CancelTimeout()
	if err != nil {
		return nil, fmt.Errorf("%w: loading composed document: %v", ErrPDFGeneration, err)
	}

	p := page.Context(ctx).Timeout(s.protocolTimeout)
	defer p.CancelTimeout()
	reader, err := p.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// Close closes the browser, kills its process tree and removes the
// launcher's user data directory.
func (s *rodSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	if s.launcher != nil {
		process.KillTree(s.launcher.PID())
		s.launcher.Cleanup()
	}
	s.browser, s.launcher = nil, nil
	if err != nil {
		s.logger.Debug("browser close", "err", err)
	}
	return err
}
