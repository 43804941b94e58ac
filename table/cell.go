package table

import (
	"fmt"

	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/shape"
)

// Cell is a single text cell in a table row.
type Cell struct {
	text    string
	dir     shape.Direction
	colspan int
	style   *CellStyle
}

// SetColspan sets the number of columns this cell spans.
func (c *Cell) SetColspan(n int) *Cell {
	if n > 0 {
		c.colspan = n
	}
	return c
}

// SetRTL marks the cell text as right-to-left. The text is shaped and
// right-aligned unless an explicit alignment is set.
func (c *Cell) SetRTL() *Cell {
	c.dir = shape.RTL
	return c
}

// SetStyle sets the style for this cell, overriding table/row defaults.
func (c *Cell) SetStyle(s CellStyle) *Cell {
	c.style = &s
	return c
}

// SetAlign sets the horizontal alignment for this cell.
func (c *Cell) SetAlign(align string) *Cell {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	c.style.Align = align
	return c
}

// SetTextColor sets the text color for this cell.
func (c *Cell) SetTextColor(col canvas.Color) *Cell {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	c.style.TextColor = &col
	return c
}

// SetBold switches the cell font to bold at size points.
func (c *Cell) SetBold(size float64) *Cell {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	c.style.Font = &FontSpec{Style: canvas.Bold, Size: size}
	return c
}

// Row is a single row in a table.
type Row struct {
	cells    []*Cell
	style    *CellStyle
	isHeader bool
	minH     float64
}

// AddCell adds a text cell to the row and returns the cell for chaining.
func (r *Row) AddCell(text string) *Cell {
	c := &Cell{text: text, colspan: 1}
	r.cells = append(r.cells, c)
	return c
}

// AddCellf adds a formatted text cell to the row.
func (r *Row) AddCellf(format string, args ...any) *Cell {
	return r.AddCell(fmt.Sprintf(format, args...))
}

// SetStyle sets the style for all cells in this row.
func (r *Row) SetStyle(s CellStyle) *Row {
	r.style = &s
	return r
}

// SetMinHeight sets the minimum height for this row.
func (r *Row) SetMinHeight(h float64) *Row {
	r.minH = h
	return r
}
