package blocks

import (
	"fmt"

	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/imgplace"
	"github.com/lvillar/inspectreport/shape"
)

const (
	signatureWidth  = 60.0
	signatureHeight = 25.0
	codeSize        = 25.0
)

// Signature closes the report: label, signature image, inspector name and
// a verification symbol encoding the report id.
type Signature struct {
	base
	img       *imgplace.Asset
	inspector string
	reportID  string
	code      *imgplace.Asset
}

// NewSignature decodes the signature image and renders the verification
// symbol. Failures of either are reported and leave the part empty.
func NewSignature(ctx *Context, signature []byte, inspector, reportID string, kind CodeKind) *Signature {
	b := &Signature{
		base:      base{kind: KindSignature},
		img:       ctx.load(KindSignature, 0, signature),
		inspector: inspector,
		reportID:  reportID,
	}
	if reportID != "" {
		sym, err := VerificationCode(kind, reportID)
		if err != nil {
			ctx.Report(KindSignature, 0, err)
		} else {
			b.code = ctx.load(KindSignature, 0, sym)
		}
	}
	return b
}

// HasCode reports whether a verification symbol is drawn.
func (b *Signature) HasCode() bool { return b.code != nil }

func (b *Signature) heading(ctx *Context) para {
	return sectionHeading(ctx, signatureTitle, signatureTitleAR)
}

func (b *Signature) bodyHeight() float64 {
	left := signatureHeight + 1 + canvas.LineHeight(smallSize)
	right := 0.0
	if b.code != nil {
		right = codeSize + 1 + canvas.LineHeight(tinySize)
	}
	return max(left, right)
}

func (b *Signature) Measure(ctx *Context) float64 {
	return b.heading(ctx).height() + 2 + b.bodyHeight() + spacing
}

func (b *Signature) Draw(ctx *Context, y float64) {
	c := ctx.Canvas
	head := b.heading(ctx)
	head.draw(c, y)
	top := y + head.height() + 2
	x := ctx.Left()

	if b.img != nil {
		box := imgplace.Rect{X: x, Y: top, W: signatureWidth, H: signatureHeight}
		c.Image(b.img, imgplace.Fit(b.img, box, imgplace.TopLeft))
	}
	rule := top + signatureHeight
	c.SetDrawColor(canvas.Gray)
	c.SetLineWidth(0.2)
	c.Line(x, rule, x+signatureWidth, rule)
	c.SetDrawColor(canvas.Black)

	name := shape.Visual(shape.Shape(b.inspector, shape.DirectionOf(b.inspector)))
	c.SetFont(canvas.Regular, smallSize)
	c.Text(x, baseline(rule+1, smallSize), name)

	if b.code != nil {
		right := ctx.Left() + ctx.Width()
		r := imgplace.Fit(b.code, imgplace.Rect{Y: top, W: 2 * codeSize, H: codeSize}, imgplace.TopLeft)
		r.X = right - r.W
		c.Image(b.code, r)
		caption := fmt.Sprintf("Report ID: %s", b.reportID)
		c.SetFont(canvas.Regular, tinySize)
		c.SetTextColor(canvas.Gray)
		c.Text(right-c.StringWidth(caption), baseline(top+codeSize+1, tinySize), caption)
		c.SetTextColor(canvas.Black)
	}
}
