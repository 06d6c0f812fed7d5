package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	var l EmbeddedLoader

	t.Run("default style", func(t *testing.T) {
		t.Parallel()

		css, err := l.LoadStyle(DefaultStyle)
		if err != nil {
			t.Fatalf("LoadStyle() unexpected error: %v", err)
		}
		for _, want := range []string{".cover", ".toc", ".docs2pdf-page"} {
			if !strings.Contains(css, want) {
				t.Errorf("default style missing %q rule", want)
			}
		}
	})

	t.Run("templates parse", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{CoverTemplate, TOCTemplate} {
			content, err := l.LoadTemplate(name)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", name, err)
			}
			if _, err := template.New(name).Parse(content); err != nil {
				t.Errorf("template %q does not parse: %v", name, err)
			}
		}
	})

	t.Run("cover carries end marker", func(t *testing.T) {
		t.Parallel()

		content, _ := l.LoadTemplate(CoverTemplate)
		if !strings.Contains(content, "data-cover-end") {
			t.Error("cover template missing data-cover-end marker")
		}
	})

	t.Run("missing style", func(t *testing.T) {
		t.Parallel()

		_, err := l.LoadStyle("nope")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := l.LoadTemplate("nope")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := l.LoadTemplate("../cover")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName", err)
		}
	})
}
