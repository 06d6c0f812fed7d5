package docs2pdf

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ---------------------------------------------------------------------------
// TestParsePaperFormat
// ---------------------------------------------------------------------------

func TestParsePaperFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    PaperSize
		wantErr bool
	}{
		{name: "A4", want: PaperSize{Width: 8.27, Height: 11.7}},
		{name: "a4", want: PaperSize{Width: 8.27, Height: 11.7}},
		{name: "Letter", want: PaperSize{Width: 8.5, Height: 11}},
		{name: " LEDGER ", want: PaperSize{Width: 17, Height: 11}},
		{name: "A0", want: PaperSize{Width: 33.1, Height: 46.8}},
		{name: "A6", want: PaperSize{Width: 4.13, Height: 5.83}},
		{name: "B5", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePaperFormat(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPaperFormat) {
					t.Errorf("ParsePaperFormat(%q) error = %v, want ErrInvalidPaperFormat", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePaperFormat(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParsePaperFormat(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestPaperFormats_AllParse(t *testing.T) {
	t.Parallel()

	for _, name := range PaperFormats() {
		if _, err := ParsePaperFormat(name); err != nil {
			t.Errorf("ParsePaperFormat(%q) unexpected error: %v", name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestParseMargin
// ---------------------------------------------------------------------------

func TestParseMargin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Margin
	}{
		{input: "32px", want: Margin{Top: 1.0 / 3, Right: 1.0 / 3, Bottom: 1.0 / 3, Left: 1.0 / 3}},
		{input: "96", want: Margin{Top: 1, Right: 1, Bottom: 1, Left: 1}},
		{input: "1in,2in", want: Margin{Top: 1, Right: 2, Bottom: 1, Left: 2}},
		{input: "1in, 2in, 3in", want: Margin{Top: 1, Right: 2, Bottom: 3, Left: 2}},
		{input: "1in,2in,3in,4in", want: Margin{Top: 1, Right: 2, Bottom: 3, Left: 4}},
		{input: "2.54cm", want: Margin{Top: 1, Right: 1, Bottom: 1, Left: 1}},
		{input: "25.4MM,72pt", want: Margin{Top: 1, Right: 1, Bottom: 1, Left: 1}},
		{input: "0", want: Margin{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMargin(tt.input)
			if err != nil {
				t.Fatalf("ParseMargin(%q) unexpected error: %v", tt.input, err)
			}
			if !approx(got.Top, tt.want.Top) || !approx(got.Right, tt.want.Right) ||
				!approx(got.Bottom, tt.want.Bottom) || !approx(got.Left, tt.want.Left) {
				t.Errorf("ParseMargin(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestParseMargin_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "px", "abc", "-1in", "1in,,2in", "1,2,3,4,5", "inf", "10em"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseMargin(input); !errors.Is(err, ErrInvalidMargin) {
				t.Errorf("ParseMargin(%q) error = %v, want ErrInvalidMargin", input, err)
			}
		})
	}
}
