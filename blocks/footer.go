package blocks

import (
	"fmt"

	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/shape"
)

// Footer is drawn at a fixed offset from the bottom of every page. It is
// not part of the flow and never moves the cursor.
type Footer struct {
	Text string
	// Watermark, when set, is stamped diagonally across each page.
	Watermark string
}

// RuleY is the y offset of the footer rule for the context geometry.
func (f Footer) RuleY(ctx *Context) float64 {
	g := ctx.Geometry
	return g.PageHeight - g.Margins.Bottom - 5
}

// DrawWatermark stamps the watermark, if any. It is called right after a
// page is added so that page content is painted over it.
func (f Footer) DrawWatermark(ctx *Context) {
	if f.Watermark == "" {
		return
	}
	ctx.Canvas.Stamp(canvas.Stamp{
		Text:    f.Watermark,
		Size:    44,
		Color:   canvas.LightGray,
		Opacity: 0.12,
		Angle:   45,
	})
}

// Draw paints the rule, the policy text and the page number of page.
func (f Footer) Draw(ctx *Context, page int) {
	c := ctx.Canvas
	g := ctx.Geometry
	left, right := ctx.Left(), ctx.Left()+ctx.Width()

	rule := f.RuleY(ctx)
	c.SetDrawColor(canvas.Gray)
	c.SetLineWidth(0.3)
	c.Line(left, rule, right, rule)
	c.SetDrawColor(canvas.Black)

	base := g.PageHeight - g.Margins.Bottom
	c.SetFont(canvas.Regular, smallSize)
	c.SetTextColor(canvas.Gray)
	if f.Text != "" {
		c.Text(left, base, shape.Visual(shape.Shape(f.Text, shape.DirectionOf(f.Text))))
	}
	num := fmt.Sprintf("Page %d/%s", page, canvas.PageAlias)
	c.Text(right-c.StringWidth(num), base, num)
	c.SetTextColor(canvas.Black)
}
