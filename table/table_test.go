package table_test

import (
	"math"
	"testing"

	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/table"
)

func newRecorder() *canvas.Recorder {
	r := canvas.NewRecorder(210, 297)
	r.AddPage()
	return r
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// one line of 9pt text plus 1.5mm padding above and below
var oneLine = canvas.LineHeight(9) + 3

func TestBasicTable(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 180)
	tb.SetColumnWidths(40, 0)

	r := tb.AddRow()
	r.AddCell("Building")
	r.AddCell("Tower A")

	r2 := tb.AddRow()
	r2.AddCell("Inspector")
	r2.AddCell("J. Smith")

	h := tb.Measure()
	if !near(h, 2*oneLine) {
		t.Fatalf("height = %v, want %v", h, 2*oneLine)
	}
	if got := tb.Draw(15, 40); !near(got, h) {
		t.Errorf("Draw returned %v, Measure %v", got, h)
	}

	texts := rec.Pages()[0].Texts()
	want := []string{"Building", "Tower A", "Inspector", "J. Smith"}
	if len(texts) != len(want) {
		t.Fatalf("texts = %q", texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestAutoWidthColumns(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 180)
	tb.SetColumnWidths(30, 0, 0)
	r := tb.AddRow()
	r.AddCell("a")
	r.AddCell("b")
	r.AddCell("c")
	tb.Draw(0, 0)

	var xs []float64
	for _, op := range rec.Pages()[0].Ops {
		if op.Kind == canvas.OpRect && op.Style == "D" {
			xs = append(xs, op.X)
			if op.X > 0 && !near(op.W, 75) {
				t.Errorf("auto column width = %v, want 75", op.W)
			}
		}
	}
	if len(xs) != 3 || !near(xs[1], 30) || !near(xs[2], 105) {
		t.Errorf("cell x offsets = %v", xs)
	}
}

func TestWrappedCellGrowsRow(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 60)
	tb.SetColumnWidths(20, 40)
	r := tb.AddRow()
	r.AddCell("aaaa bbbb cccc dddd")
	r.AddCell("short")

	want := 2*canvas.LineHeight(9) + 3
	if h := tb.Measure(); !near(h, want) {
		t.Errorf("height = %v, want %v", h, want)
	}
}

func TestHeaderRowsComeFirst(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 100)
	tb.AddRow().AddCell("body")
	tb.AddHeaderRow().AddCell("head")

	if tb.Len() != 2 {
		t.Fatalf("Len = %d", tb.Len())
	}
	tb.Draw(0, 0)
	texts := rec.Pages()[0].Texts()
	if texts[0] != "head" || texts[1] != "body" {
		t.Errorf("texts = %q", texts)
	}

	var fills int
	for _, op := range rec.Pages()[0].Ops {
		if op.Kind == canvas.OpRect && op.Style == "F" {
			fills++
		}
	}
	if fills != 1 {
		t.Errorf("fills = %d, want 1 header background", fills)
	}
}

func TestAlternatingRows(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 100)
	even := canvas.Color{R: 245, G: 245, B: 245}
	st := table.DefaultStyle()
	st.AlternateRows = &table.AlternateStyle{Even: table.CellStyle{FillColor: &even}}
	tb.SetStyle(st)
	for i := 0; i < 4; i++ {
		tb.AddRow().AddCellf("row %d", i)
	}
	tb.Draw(0, 0)

	var fills int
	for _, op := range rec.Pages()[0].Ops {
		if op.Kind == canvas.OpRect && op.Style == "F" {
			fills++
		}
	}
	if fills != 2 {
		t.Errorf("fills = %d, want 2", fills)
	}
}

func TestRTLCellIsRightAligned(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 100)
	tb.AddRow().AddCell("مبنى").SetRTL()
	tb.Draw(10, 0)

	ops := rec.Pages()[0].Ops
	var text canvas.Op
	for _, op := range ops {
		if op.Kind == canvas.OpText {
			text = op
		}
	}
	w := canvas.MeasureWidth(text.Text, 9)
	if !near(text.X+w, 10+100-1.5) {
		t.Errorf("right edge = %v, want %v", text.X+w, 10+100-1.5)
	}
}

func TestColspan(t *testing.T) {
	rec := newRecorder()
	tb := table.New(rec, 90)
	tb.SetColumnWidths(30, 30, 30)
	tb.AddRow().AddCell("wide").SetColspan(2)
	tb.Draw(0, 0)

	for _, op := range rec.Pages()[0].Ops {
		if op.Kind == canvas.OpRect && !near(op.W, 60) {
			t.Errorf("spanned cell width = %v, want 60", op.W)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	tb := table.New(newRecorder(), 100)
	if h := tb.Measure(); h != 0 {
		t.Errorf("empty table height = %v", h)
	}
}
