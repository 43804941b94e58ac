// Package layout tracks the write position of a flowing document.
//
// A Cursor knows the page geometry, the current page and the vertical offset
// of the next block. Callers measure a block first, ask the cursor whether it
// fits, and only then draw it and advance. The cursor never draws anything,
// so pagination can be tested without a rendering backend.
package layout

import "fmt"

// Millimetres per PostScript point.
const MMPerPoint = 25.4 / 72

// Margins are page margins in millimetres.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Geometry describes the fixed page layout of a document.
type Geometry struct {
	PageWidth, PageHeight float64
	Margins               Margins
	// FooterReserve is kept free above the bottom margin for the footer.
	FooterReserve float64
}

// A4 returns portrait A4 with uniform margins and the given footer reserve.
func A4(margin, footerReserve float64) Geometry {
	return Geometry{
		PageWidth:     210,
		PageHeight:    297,
		Margins:       Margins{Top: margin, Right: margin, Bottom: margin, Left: margin},
		FooterReserve: footerReserve,
	}
}

// ContentTop is the y offset of the first line of a page.
func (g Geometry) ContentTop() float64 { return g.Margins.Top }

// ContentBottom is the lowest y offset flowed content may reach.
func (g Geometry) ContentBottom() float64 {
	return g.PageHeight - g.Margins.Bottom - g.FooterReserve
}

// ContentHeight is the flowable height of an empty page.
func (g Geometry) ContentHeight() float64 { return g.ContentBottom() - g.ContentTop() }

// ContentWidth is the width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.Margins.Left - g.Margins.Right
}

// Validate rejects geometries without room for content.
func (g Geometry) Validate() error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("layout: invalid page size %.1fx%.1f", g.PageWidth, g.PageHeight)
	}
	if g.ContentWidth() <= 0 || g.ContentHeight() <= 0 {
		return fmt.Errorf("layout: margins leave no content area")
	}
	return nil
}

// State is the cursor state.
type State int

const (
	OnPage State = iota
	PageFull
)

func (s State) String() string {
	if s == PageFull {
		return "page-full"
	}
	return "on-page"
}

// Fit is the answer of Measure.
type Fit int

const (
	Fits Fit = iota
	NeedsNewPage
)

// Cursor is the render state of one document. It is not safe for
// concurrent use; every render owns its own cursor.
type Cursor struct {
	geo    Geometry
	y      float64
	page   int // 0-based index of the current page
	pages  int // pages started so far
	placed int // blocks placed on the current page
	state  State
}

// NewCursor returns a cursor at the top of the first page.
func NewCursor(g Geometry) *Cursor {
	return &Cursor{geo: g, y: g.ContentTop(), pages: 1}
}

// Geometry returns the page geometry.
func (c *Cursor) Geometry() Geometry { return c.geo }

// Y returns the current vertical offset from the page top.
func (c *Cursor) Y() float64 { return c.y }

// Page returns the 0-based index of the current page.
func (c *Cursor) Page() int { return c.page }

// Pages returns the number of pages started so far.
func (c *Cursor) Pages() int { return c.pages }

// State returns the current state.
func (c *Cursor) State() State { return c.state }

// Empty reports whether no block has been placed on the current page.
// Repeated headers added with Reserve do not count.
func (c *Cursor) Empty() bool { return c.placed == 0 }

// Remaining returns the flowable space left on the current page.
func (c *Cursor) Remaining() float64 { return c.geo.ContentBottom() - c.y }

// Measure tells whether a block of height h fits on the current page.
// A block that does not fit moves the cursor to PageFull.
func (c *Cursor) Measure(h float64) Fit {
	if h <= c.Remaining()+epsilon {
		return Fits
	}
	c.state = PageFull
	return NeedsNewPage
}

// Needs is the page-break rule: the block must go to a new page when it
// does not fit and the current page already holds a block. An oversized
// block on an empty page is placed anyway and may overflow the margin.
func (c *Cursor) Needs(h float64) bool {
	return c.Measure(h) == NeedsNewPage && !c.Empty()
}

// Advance moves the cursor below a placed block of height h.
func (c *Cursor) Advance(h float64) {
	c.y += h
	c.placed++
	if c.Remaining() <= epsilon {
		c.state = PageFull
	}
}

// Reserve moves the cursor down without counting a placed block.
func (c *Cursor) Reserve(h float64) {
	c.y += h
}

// NewPage starts the next page with the cursor at the top content offset.
func (c *Cursor) NewPage() {
	c.page++
	c.pages++
	c.y = c.geo.ContentTop()
	c.placed = 0
	c.state = OnPage
}

const epsilon = 1e-6
