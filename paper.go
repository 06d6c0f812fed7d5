package docs2pdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PaperSize is a page size in inches.
type PaperSize struct {
	Width  float64
	Height float64
}

// DefaultPaperFormat is used when PageSettings.Format is empty.
const DefaultPaperFormat = "A4"

// DefaultMargin is used when PageSettings.Margin is empty.
const DefaultMargin = "32px"

// paperFormats maps lower-case format names to their size in inches.
var paperFormats = map[string]PaperSize{
	"letter":  {Width: 8.5, Height: 11},
	"legal":   {Width: 8.5, Height: 14},
	"tabloid": {Width: 11, Height: 17},
	"ledger":  {Width: 17, Height: 11},
	"a0":      {Width: 33.1, Height: 46.8},
	"a1":      {Width: 23.4, Height: 33.1},
	"a2":      {Width: 16.54, Height: 23.4},
	"a3":      {Width: 11.7, Height: 16.54},
	"a4":      {Width: 8.27, Height: 11.7},
	"a5":      {Width: 5.83, Height: 8.27},
	"a6":      {Width: 4.13, Height: 5.83},
}

// PaperFormats lists the accepted format names.
func PaperFormats() []string {
	return []string{"Letter", "Legal", "Tabloid", "Ledger", "A0", "A1", "A2", "A3", "A4", "A5", "A6"}
}

// ParsePaperFormat returns the size of a named paper format (case-insensitive).
func ParsePaperFormat(name string) (PaperSize, error) {
	size, ok := paperFormats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PaperSize{}, fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidPaperFormat, name, strings.Join(PaperFormats(), ", "))
	}
	return size, nil
}

// Margin holds page margins in inches.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// unitsPerInch converts CSS length units to inches.
var unitsPerInch = map[string]float64{
	"px": 96,
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
}

// ParseMargin parses one to four comma-separated CSS lengths in shorthand
// order (top, right, bottom, left). Bare numbers are pixels.
func ParseMargin(s string) (*Margin, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 4 {
		return nil, fmt.Errorf("%w: %q (at most 4 values)", ErrInvalidMargin, s)
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseLength(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidMargin, s, err)
		}
		values[i] = v
	}

	switch len(values) {
	case 1:
		return &Margin{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}, nil
	case 2:
		return &Margin{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return &Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	default:
		return &Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	}
}

// parseLength converts a single CSS length to inches.
func parseLength(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}

	unit := "px"
	if len(s) > 2 {
		if _, ok := unitsPerInch[s[len(s)-2:]]; ok {
			unit = s[len(s)-2:]
			s = strings.TrimSpace(s[:len(s)-2])
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("length %q: not a number", strings.TrimSpace(raw))
	}
	if v < 0 {
		return 0, fmt.Errorf("length %q: negative", strings.TrimSpace(raw))
	}
	return v / unitsPerInch[unit], nil
}
