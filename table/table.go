package table

import (
	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/shape"
)

// minRowHeight is the smallest height of any row, in millimetres.
const minRowHeight = 5.0

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width    float64 // Fixed width. 0 means auto/fill.
	MinWidth float64 // Minimum width for auto columns.
	MaxWidth float64 // Maximum width for auto columns. 0 means unlimited.
	Align    string  // Default alignment for this column ("L", "C", "R").
}

// Table is a measured grid of text cells.
type Table struct {
	c       canvas.Canvas
	columns []ColumnDef
	rows    []*Row
	style   TableStyle
	width   float64
}

// New creates a table of the given total width drawn on c.
func New(c canvas.Canvas, width float64) *Table {
	return &Table{c: c, width: width, style: DefaultStyle()}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
// A width of 0 means the column will auto-fill remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// Width returns the total table width.
func (t *Table) Width() float64 { return t.width }

// Len returns the number of rows, headers included.
func (t *Table) Len() int { return len(t.rows) }

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a header row after any existing header rows.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	at := 0
	for at < len(t.rows) && t.rows[at].isHeader {
		at++
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[at+1:], t.rows[at:])
	t.rows[at] = r
	return r
}

// laidCell is a cell with its wrapped lines and resolved geometry.
type laidCell struct {
	x, w  float64
	style CellStyle
	lines []shape.Line
}

type laidRow struct {
	cells []laidCell
	h     float64
}

// Measure returns the height of the whole table.
func (t *Table) Measure() float64 {
	var h float64
	for _, r := range t.layout() {
		h += r.h
	}
	return h
}

// Draw paints the table with its top-left corner at (x, y) and returns the
// height used, which equals Measure.
func (t *Table) Draw(x, y float64) float64 {
	pad := t.style.CellPadding
	top := y
	for _, r := range t.layout() {
		for _, lc := range r.cells {
			cx := x + lc.x
			if lc.style.FillColor != nil {
				t.c.SetFillColor(*lc.style.FillColor)
				t.c.Rect(cx, top, lc.w, r.h, "F")
			}
			if b := t.style.Border; b != nil {
				t.c.SetDrawColor(b.Color)
				t.c.SetLineWidth(b.Width)
				t.c.Rect(cx, top, lc.w, r.h, "D")
			}

			t.c.SetTextColor(canvas.Black)
			if lc.style.TextColor != nil {
				t.c.SetTextColor(*lc.style.TextColor)
			}
			font := t.fontOf(lc.style)
			t.c.SetFont(font.Style, font.Size)
			lh := canvas.LineHeight(font.Size)
			inner := lc.w - pad.Left - pad.Right
			for i, line := range lc.lines {
				tx := cx + pad.Left
				switch lc.style.Align {
				case "R":
					tx += inner - line.Width
				case "C":
					tx += (inner - line.Width) / 2
				}
				base := top + pad.Top + float64(i+1)*lh - lh*0.3
				t.c.Text(tx, base, line.String())
			}
		}
		top += r.h
	}
	t.c.SetDrawColor(canvas.Black)
	t.c.SetTextColor(canvas.Black)
	return top - y
}

// layout wraps every cell. It sets fonts on the canvas while measuring.
func (t *Table) layout() []laidRow {
	widths := t.calculateWidths()
	if len(widths) == 0 {
		return nil
	}
	pad := t.style.CellPadding

	out := make([]laidRow, 0, len(t.rows))
	body := 0
	for _, r := range t.rows {
		lr := laidRow{h: max(minRowHeight, r.minH)}
		bodyIdx := -1
		if !r.isHeader {
			bodyIdx = body
			body++
		}
		col, x := 0, 0.0
		for _, cell := range r.cells {
			if col >= len(widths) {
				break
			}
			w := 0.0
			for j := 0; j < cell.colspan && col+j < len(widths); j++ {
				w += widths[col+j]
			}
			st := t.resolveCellStyle(cell, r, col, bodyIdx)
			font := t.fontOf(st)
			t.c.SetFont(font.Style, font.Size)
			inner := max(1, w-pad.Left-pad.Right)
			lines := shape.Wrap(cell.text, cell.dir, inner, t.c.StringWidth)

			h := float64(len(lines))*canvas.LineHeight(font.Size) + pad.Top + pad.Bottom
			lr.h = max(lr.h, h)
			lr.cells = append(lr.cells, laidCell{x: x, w: w, style: st, lines: lines})
			x += w
			col += cell.colspan
		}
		out = append(out, lr)
	}
	return out
}

func (t *Table) fontOf(s CellStyle) FontSpec {
	if s.Font != nil {
		return *s.Font
	}
	f := t.style.CellFont
	if f.Size == 0 {
		f.Size = 9
	}
	return f
}

// calculateWidths computes final column widths from the definitions and
// the table width.
func (t *Table) calculateWidths() []float64 {
	numCols := len(t.columns)
	cols := t.columns
	if numCols == 0 {
		for _, r := range t.rows {
			n := 0
			for _, c := range r.cells {
				n += c.colspan
			}
			numCols = max(numCols, n)
		}
		if numCols == 0 {
			return nil
		}
		cols = make([]ColumnDef, numCols)
	}

	widths := make([]float64, numCols)
	fixedTotal := 0.0
	autoCount := 0
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		autoWidth := max(0, t.width-fixedTotal) / float64(autoCount)
		for i, col := range cols {
			if col.Width == 0 {
				w := autoWidth
				if col.MinWidth > 0 && w < col.MinWidth {
					w = col.MinWidth
				}
				if col.MaxWidth > 0 && w > col.MaxWidth {
					w = col.MaxWidth
				}
				widths[i] = w
			}
		}
	}
	return widths
}

// resolveCellStyle merges table, header, alternate row, column, row and
// cell styles, in increasing priority.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, col, bodyIdx int) CellStyle {
	var result CellStyle
	if col < len(t.columns) {
		result.Align = t.columns[col].Align
	}
	if cell.dir == shape.RTL {
		result.Align = "R"
	}
	if row.isHeader && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}
	if bodyIdx >= 0 && t.style.AlternateRows != nil {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}
	if row.style != nil {
		mergeStyle(&result, row.style)
	}
	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}
	return result
}
