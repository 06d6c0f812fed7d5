package crawl

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

// ValidateSelector checks that selector compiles as a CSS selector group.
// goquery panics on invalid selectors, so configuration is checked up front.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSelector)
	}
	if _, err := cascadia.ParseGroup(selector); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}
	return nil
}
