package docs2pdf

import (
	"context"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
)

// Running header and footer defaults. Chrome fills elements with the
// pageNumber and totalPages classes.
const (
	emptyHeaderTemplate   = "<span></span>"
	defaultFooterTemplate = `<div style="font-size: 9px; width: 100%; text-align: center; color: #777;">` +
		`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`
)

// buildPDFOptions maps page settings to Chrome print options.
func buildPDFOptions(page *PageSettings) (*proto.PagePrintToPDF, error) {
	if page == nil {
		page = &PageSettings{}
	}

	format := page.Format
	if format == "" {
		format = DefaultPaperFormat
	}
	size, err := ParsePaperFormat(format)
	if err != nil {
		return nil, err
	}

	marginSpec := page.Margin
	if marginSpec == "" {
		marginSpec = DefaultMargin
	}
	margin, err := ParseMargin(marginSpec)
	if err != nil {
		return nil, err
	}

	header := page.HeaderTemplate
	if header == "" {
		header = emptyHeaderTemplate
	}
	footer := page.FooterTemplate
	if footer == "" {
		footer = defaultFooterTemplate
	}

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(size.Width),
		PaperHeight:         floatPtr(size.Height),
		MarginTop:           floatPtr(margin.Top),
		MarginRight:         floatPtr(margin.Right),
		MarginBottom:        floatPtr(margin.Bottom),
		MarginLeft:          floatPtr(margin.Left),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      header,
		FooterTemplate:      footer,
	}, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// renderPDF writes the composed HTML to a temp file and prints it.
// The temp file is removed before returning.
func renderPDF(ctx context.Context, s session, htmlContent string, page *PageSettings) ([]byte, error) {
	opts, err := buildPDFOptions(page)
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return s.PrintPDF(ctx, tmpPath, opts)
}
