package blocks

import (
	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/imgplace"
)

// Bilingual section titles. The secondary halves are in logical order.
const (
	reportTitle       = "Inspection Report"
	reportTitleAR     = "تقرير التفتيش"
	checklistTitle    = "Checklist"
	checklistTitleAR  = "قائمة الفحص"
	continuationTitle = "Checklist (cont.)"
	continuationAR    = "متابعة قائمة الفحص"
	buildingTitle     = "Building Information"
	buildingTitleAR   = "معلومات المبنى"
	summaryTitle      = "Summary"
	summaryTitleAR    = "ملخص"
	notesTitle        = "Notes"
	notesTitleAR      = "ملاحظات"
	actionsTitle      = "Corrective Actions"
	actionsTitleAR    = "الإجراءات التصحيحية"
	signatureTitle    = "Inspector Signature"
	signatureTitleAR  = "توقيع المفتش"
)

const (
	headerTitleHeight = 10.0
	logoWidth         = 40.0
	logoHeight        = 18.0
	logoTitleGap      = 5.0
	heroHeight        = 70.0
)

// Header is the branding header: logo, report title and the organization
// label aligned to the right margin.
type Header struct {
	base
	logo         *imgplace.Asset
	organization string
}

// NewHeader decodes the branding logo. A broken logo is reported and the
// header is drawn without it.
func NewHeader(ctx *Context, logo []byte, organization string) *Header {
	return &Header{
		base:         base{kind: KindHeader},
		logo:         ctx.load(KindHeader, 0, logo),
		organization: organization,
	}
}

func (b *Header) logoRect(ctx *Context, y float64) imgplace.Rect {
	return imgplace.Fit(b.logo, imgplace.Rect{X: ctx.Left(), Y: y, W: logoWidth, H: logoHeight}, imgplace.TopLeft)
}

func (b *Header) Measure(ctx *Context) float64 {
	h := headerTitleHeight
	if b.logo != nil {
		h = max(h, b.logoRect(ctx, 0).H)
	}
	return h + spacing
}

func (b *Header) Draw(ctx *Context, y float64) {
	c := ctx.Canvas
	x := ctx.Left()
	if b.logo != nil {
		r := b.logoRect(ctx, y)
		c.Image(b.logo, r)
		x += r.W + logoTitleGap
	}

	c.SetFont(canvas.Bold, titleSize)
	c.SetTextColor(canvas.Black)
	c.Text(x, baseline(y, titleSize), bilingual(reportTitle, reportTitleAR))

	if b.organization != "" {
		c.SetFont(canvas.Regular, smallSize)
		c.SetTextColor(canvas.Gray)
		right := ctx.Left() + ctx.Width()
		c.Text(right-c.StringWidth(b.organization), baseline(y, titleSize), b.organization)
		c.SetTextColor(canvas.Black)
	}

	c.SetDrawColor(canvas.LightGray)
	c.SetLineWidth(0.3)
	bottom := y + b.Measure(ctx) - spacing/2
	c.Line(ctx.Left(), bottom, ctx.Left()+ctx.Width(), bottom)
	c.SetDrawColor(canvas.Black)
}

// Hero is the large building photo below the header.
type Hero struct {
	base
	placed imgplace.Placement // relative to the top of the block
}

// NewHero returns nil when there is no usable image.
func NewHero(ctx *Context, data []byte) *Hero {
	pl, err := ctx.Placer.Place(data, imgplace.Rect{X: ctx.Left(), W: ctx.Width(), H: heroHeight})
	if err != nil {
		ctx.Report(KindHero, 0, err)
		return nil
	}
	if !pl.Present {
		return nil
	}
	return &Hero{base: base{kind: KindHero}, placed: pl}
}

func (b *Hero) Measure(ctx *Context) float64 {
	if ctx.Placer.Anchor() == imgplace.Center {
		return heroHeight + spacing
	}
	return b.placed.Height() + spacing
}

func (b *Hero) Draw(ctx *Context, y float64) {
	r := b.placed.Rect
	r.Y += y
	ctx.Canvas.Image(b.placed.Asset, r)
}
