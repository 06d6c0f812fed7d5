package crawl

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestHTMLDocument(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, "https://d.io/a", `<html><head>
		<title> Intro | Docs </title>
		<meta name="Keywords" content="guide, internal">
		<meta name="description" content="desc">
	</head><body><article><p>hi</p></article></body></html>`)

	if got := doc.URL(); got != "https://d.io/a" {
		t.Errorf("URL() = %q", got)
	}
	if got := doc.Title(); got != "Intro | Docs" {
		t.Errorf("Title() = %q, want %q", got, "Intro | Docs")
	}
	if got := doc.Meta("keywords"); got != "guide, internal" {
		t.Errorf("Meta(keywords) = %q, want %q", got, "guide, internal")
	}
	if got := doc.Meta("author"); got != "" {
		t.Errorf("Meta(author) = %q, want empty", got)
	}
	if got := doc.Find("article p").Text(); got != "hi" {
		t.Errorf("Find().Text() = %q, want %q", got, "hi")
	}
}

func TestFirst(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, "https://d.io/a", `<body><main id="m"><p>x</p></main><main id="n"></main></body>`)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		sel, err := First(doc, "main")
		if err != nil {
			t.Fatalf("First() unexpected error: %v", err)
		}
		if sel.Length() != 1 || sel.AttrOr("id", "") != "m" {
			t.Errorf("First() = %d elements, id %q, want the first <main>", sel.Length(), sel.AttrOr("id", ""))
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := First(doc, "article")
		if !errors.Is(err, ErrSelectorNotFound) {
			t.Errorf("First() error = %v, want ErrSelectorNotFound", err)
		}
	})
}

func TestNavigationError(t *testing.T) {
	t.Parallel()

	t.Run("timeout from deadline", func(t *testing.T) {
		t.Parallel()

		err := NewNavigationError("https://d.io/a", context.DeadlineExceeded)
		if err.Kind != Timeout {
			t.Errorf("Kind = %v, want Timeout", err.Kind)
		}
		if !errors.Is(err, ErrNavigation) || !errors.Is(err, ErrNavigationTimeout) {
			t.Error("timeout error should match ErrNavigation and ErrNavigationTimeout")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Error("should unwrap to context.DeadlineExceeded")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		err := NewNavigationError("https://d.io/a", errors.New("net::ERR_NAME_NOT_RESOLVED"))
		if err.Kind != Unreachable {
			t.Errorf("Kind = %v, want Unreachable", err.Kind)
		}
		if errors.Is(err, ErrNavigationTimeout) {
			t.Error("unreachable error should not match ErrNavigationTimeout")
		}
		if !strings.Contains(err.Error(), "https://d.io/a") || !strings.Contains(err.Error(), "unreachable") {
			t.Errorf("Error() = %q, want URL and kind", err.Error())
		}
	})
}
