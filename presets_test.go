package docs2pdf

import (
	"errors"
	"testing"

	"github.com/alnah/go-docs2pdf/internal/crawl"
)

func TestDocusaurusPreset(t *testing.T) {
	t.Parallel()

	for _, version := range []int{1, 2} {
		p, err := DocusaurusPreset(version)
		if err != nil {
			t.Fatalf("DocusaurusPreset(%d) unexpected error: %v", version, err)
		}
		selectors := append([]string{p.ContentSelector, p.PaginationSelector}, p.ExcludeSelectors...)
		for _, sel := range selectors {
			if err := crawl.ValidateSelector(sel); err != nil {
				t.Errorf("v%d selector %q invalid: %v", version, sel, err)
			}
		}
	}

	if _, err := DocusaurusPreset(3); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("DocusaurusPreset(3) error = %v, want ErrInvalidPreset", err)
	}
}

func TestPreset_Apply(t *testing.T) {
	t.Parallel()

	p, err := DocusaurusPreset(1)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("fills unset fields", func(t *testing.T) {
		t.Parallel()

		var cr CrawlConfig
		var co ComposeConfig
		p.Apply(&cr, &co)

		if cr.ContentSelector != "article" || cr.PaginationSelector != ".docs-prevnext > a.docs-next" {
			t.Errorf("selectors = %q, %q", cr.ContentSelector, cr.PaginationSelector)
		}
		if len(cr.ExcludeSelectors) != 6 {
			t.Errorf("exclude selectors = %v", cr.ExcludeSelectors)
		}
		if co.CSS != ".navPusher {padding-top: 0;}" {
			t.Errorf("css = %q", co.CSS)
		}
	})

	t.Run("keeps user values", func(t *testing.T) {
		t.Parallel()

		cr := CrawlConfig{ContentSelector: "main", ExcludeSelectors: []string{".ad"}}
		co := ComposeConfig{CSS: "body{color:red}"}
		p.Apply(&cr, &co)

		if cr.ContentSelector != "main" || len(cr.ExcludeSelectors) != 1 {
			t.Errorf("user values overwritten: %+v", cr)
		}
		if cr.PaginationSelector == "" {
			t.Error("unset pagination selector not filled")
		}
		if co.CSS != ".navPusher {padding-top: 0;}\nbody{color:red}" {
			t.Errorf("css = %q, want preset first", co.CSS)
		}
	})

	t.Run("nil configs", func(t *testing.T) {
		t.Parallel()
		p.Apply(nil, nil)
	})
}

func TestPreset_ApplyDoesNotShareSlice(t *testing.T) {
	t.Parallel()

	p, err := DocusaurusPreset(2)
	if err != nil {
		t.Fatal(err)
	}
	var cr CrawlConfig
	p.Apply(&cr, nil)
	cr.ExcludeSelectors[0] = "changed"
	if p.ExcludeSelectors[0] == "changed" {
		t.Error("Apply shares the preset slice")
	}
}
