// Package canvas is the drawing surface the report blocks paint on.
//
// Coordinates are millimetres from the top-left corner of the page and text
// is positioned by its baseline. PDF writes through github.com/go-pdf/fpdf;
// Recorder keeps the operations in memory with fixed font metrics, which
// makes layout decisions reproducible in tests.
package canvas

import (
	"github.com/lvillar/inspectreport/imgplace"
)

// PageAlias is replaced by the total page count when the document is
// written.
const PageAlias = "{nb}"

// Font styles accepted by SetFont.
const (
	Regular = ""
	Bold    = "B"
)

// Color is an RGB color with 0-255 components.
type Color struct {
	R, G, B int
}

// Common colors.
var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	Gray      = Color{110, 110, 110}
	LightGray = Color{200, 200, 200}
	Green     = Color{30, 130, 60}
	Red       = Color{190, 40, 40}
	Amber     = Color{200, 130, 0}
	HeaderBG  = Color{235, 238, 242}
)

// Stamp is a rotated translucent text drawn across the page.
type Stamp struct {
	Text    string
	Size    float64 // points
	Color   Color
	Opacity float64 // 0..1
	Angle   float64 // degrees, counter-clockwise
}

// Meta is the document information dictionary.
type Meta struct {
	Title, Author, Subject, Creator string
}

// Canvas is implemented by PDF and Recorder.
type Canvas interface {
	// AddPage starts a new page and draws the background, if any.
	AddPage()
	// PageNo returns the 1-based number of the current page.
	PageNo() int
	PageSize() (w, h float64)

	SetFont(style string, size float64)
	FontSize() float64
	// StringWidth measures s in the current font.
	StringWidth(s string) float64

	SetTextColor(c Color)
	SetDrawColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(w float64)

	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	// Rect draws a rectangle; style is "D" (outline), "F" (fill) or "FD".
	Rect(x, y, w, h float64, style string)
	Image(a *imgplace.Asset, r imgplace.Rect)
	Stamp(s Stamp)

	// SetBackground installs a one-page PDF drawn under every page added
	// afterwards.
	SetBackground(pdf []byte) error
	SetMeta(m Meta)

	// Err returns the first error recorded by the canvas.
	Err() error
}

// LineHeight is the baseline distance, in millimetres, for a font size in
// points.
func LineHeight(size float64) float64 {
	return size * 25.4 / 72 * 1.35
}
