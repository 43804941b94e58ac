// Package blocks renders the semantic parts of an inspection report.
//
// Every block is measured before it is drawn. Measure returns the height the
// block will take at the current page geometry; Draw paints it with its top
// edge at y and must not use more than the measured height. Blocks decode
// their images when they are built, so a broken image is reported once and
// the block renders without it.
package blocks

import (
	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/imgplace"
	"github.com/lvillar/inspectreport/inspection"
	"github.com/lvillar/inspectreport/layout"
	"github.com/lvillar/inspectreport/shape"
)

// Kind identifies a block type.
type Kind string

const (
	KindHeader            Kind = "header"
	KindHero              Kind = "hero"
	KindBuildingInfo      Kind = "building-info"
	KindSummary           Kind = "summary"
	KindChecklistTitle    Kind = "checklist-title"
	KindContinuation      Kind = "continuation"
	KindEntry             Kind = "entry"
	KindNotes             Kind = "notes"
	KindCorrectiveActions Kind = "corrective-actions"
	KindSignature         Kind = "signature"

	// KindLetterhead labels letterhead diagnostics; it is not a block.
	KindLetterhead Kind = "letterhead"
)

// Block is one measured, placeable part of the report.
type Block interface {
	Kind() Kind
	// Entry returns the checklist index of entry blocks and 0 otherwise.
	Entry() int
	Measure(ctx *Context) float64
	Draw(ctx *Context, y float64)
}

type base struct {
	kind  Kind
	entry int
}

func (b base) Kind() Kind { return b.kind }

func (b base) Entry() int { return b.entry }

// Sizes in points and distances in millimetres.
const (
	titleSize = 16
	headSize  = 12
	bodySize  = 10
	smallSize = 9
	tinySize  = 7

	spacing = 4.0 // below section blocks
	indent  = 5.0
)

// Context carries what blocks need for one render.
type Context struct {
	Canvas   canvas.Canvas
	Geometry layout.Geometry
	Placer   *imgplace.Placer

	diags []inspection.Diagnostic
}

// NewContext returns a context drawing on c.
func NewContext(c canvas.Canvas, g layout.Geometry, p *imgplace.Placer) *Context {
	if p == nil {
		p = imgplace.NewPlacer()
	}
	return &Context{Canvas: c, Geometry: g, Placer: p}
}

// Left is the x offset of the content area.
func (ctx *Context) Left() float64 { return ctx.Geometry.Margins.Left }

// Width is the width of the content area.
func (ctx *Context) Width() float64 { return ctx.Geometry.ContentWidth() }

// Report records a non-fatal problem.
func (ctx *Context) Report(kind Kind, entry int, err error) {
	ctx.diags = append(ctx.diags, inspection.Diagnostic{Block: string(kind), Entry: entry, Err: err})
}

// Diagnostics returns the problems reported so far.
func (ctx *Context) Diagnostics() []inspection.Diagnostic { return ctx.diags }

// load decodes an image for a block. Undecodable data is reported and
// treated as absent.
func (ctx *Context) load(kind Kind, entry int, data []byte) *imgplace.Asset {
	a, err := ctx.Placer.Load(data)
	if err != nil {
		ctx.Report(kind, entry, err)
		return nil
	}
	return a
}

// para is wrapped text positioned inside a block.
type para struct {
	lines    []shape.Line
	style    string
	size     float64
	x, width float64
	dy       float64 // offset of the first line from the block top
	right    bool
	color    canvas.Color
}

func newPara(c canvas.Canvas, text string, dir shape.Direction, style string, size, x, width float64) para {
	c.SetFont(style, size)
	return para{
		lines: shape.Wrap(text, dir, max(1, width), c.StringWidth),
		style: style,
		size:  size,
		x:     x,
		width: width,
		right: dir == shape.RTL,
	}
}

func (p para) height() float64 {
	return float64(len(p.lines)) * canvas.LineHeight(p.size)
}

func (p para) draw(c canvas.Canvas, top float64) {
	if len(p.lines) == 0 {
		return
	}
	c.SetFont(p.style, p.size)
	c.SetTextColor(p.color)
	lh := canvas.LineHeight(p.size)
	for i, l := range p.lines {
		x := p.x
		if p.right {
			x += p.width - l.Width
		}
		c.Text(x, baseline(top+p.dy+float64(i)*lh, p.size), l.String())
	}
	c.SetTextColor(canvas.Black)
}

// baseline returns the baseline of a line whose box starts at top.
func baseline(top, size float64) float64 {
	return top + canvas.LineHeight(size)*0.7
}

// bilingual joins a primary label with its shaped secondary translation.
func bilingual(primary, secondary string) string {
	return primary + " / " + shape.Visual(shape.Shape(secondary, shape.RTL))
}
