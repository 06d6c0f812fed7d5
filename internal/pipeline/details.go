package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// OpenDetails sets the open attribute on every <details> element so
// collapsed content is printed.
func OpenDetails(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}
	details := doc.Find("details")
	if details.Length() == 0 {
		return htmlContent, nil
	}
	details.SetAttr("open", "")
	return doc.Html()
}
