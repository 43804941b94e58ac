// Package table lays out bordered grids of text on a canvas.
//
// A Table is measured before it is drawn: Measure returns the total height
// for the configured width, and Draw paints the rows at a given position.
// Tables never break across pages themselves; the caller decides where a
// table goes. Cells wrap their text and may hold right-to-left text, which
// is shaped before measuring.
package table

import "github.com/lvillar/inspectreport/canvas"

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Style string  // canvas.Regular or canvas.Bold
	Size  float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle defines the appearance of cell borders.
type BorderStyle struct {
	Width float64
	Color canvas.Color
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	FillColor *canvas.Color
	TextColor *canvas.Color
	Font      *FontSpec
	Align     string // "L", "C", "R"
}

// AlternateStyle defines alternating row colors.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	Border        *BorderStyle // nil draws no borders
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	CellPadding   Padding
	CellFont      FontSpec
}

// DefaultStyle is the style used by report tables.
func DefaultStyle() TableStyle {
	header := canvas.HeaderBG
	return TableStyle{
		Border:      &BorderStyle{Width: 0.2, Color: canvas.LightGray},
		CellPadding: UniformPadding(1.5),
		CellFont:    FontSpec{Style: canvas.Regular, Size: 9},
		HeaderStyle: &CellStyle{
			FillColor: &header,
			Font:      &FontSpec{Style: canvas.Bold, Size: 9},
		},
	}
}

// mergeStyle copies non-nil fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
