package blocks

import (
	"strconv"

	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/imgplace"
	"github.com/lvillar/inspectreport/inspection"
	"github.com/lvillar/inspectreport/shape"
)

// Entry photo geometry, in millimetres.
const (
	photoWidth       = 60.0
	photoHeight      = 45.0
	belowPhotoWidth  = 90.0
	belowPhotoHeight = 60.0
	columnGap        = 4.0
	minTextWidth     = 100.0
	statusGap        = 3.0
	entrySpacing     = 3.0
)

// Heading is a single bilingual title line.
type Heading struct {
	base
	text   string
	height float64
}

// NewChecklistTitle returns the title above the first checklist entry.
func NewChecklistTitle() *Heading {
	return &Heading{
		base:   base{kind: KindChecklistTitle},
		text:   bilingual(checklistTitle, checklistTitleAR),
		height: 12,
	}
}

// NewContinuation returns the header repeated at the top of every page a
// checklist overflows to.
func NewContinuation() *Heading {
	return &Heading{
		base:   base{kind: KindContinuation},
		text:   bilingual(continuationTitle, continuationAR),
		height: 8,
	}
}

// Text returns the shaped title.
func (b *Heading) Text() string { return b.text }

func (b *Heading) Measure(*Context) float64 { return b.height }

func (b *Heading) Draw(ctx *Context, y float64) {
	c := ctx.Canvas
	c.SetFont(canvas.Bold, headSize)
	c.SetTextColor(canvas.Black)
	top := y + b.height - canvas.LineHeight(headSize) - 2
	c.Text(ctx.Left(), baseline(top, headSize), b.text)
}

// Entry is the composite block of one checklist entry.
type Entry struct {
	base
	e     inspection.ChecklistEntry
	photo *imgplace.Asset
}

// NewEntry decodes the entry photo. A broken photo is reported and the entry
// is drawn without it.
func NewEntry(ctx *Context, e inspection.ChecklistEntry) *Entry {
	return &Entry{
		base:  base{kind: KindEntry, entry: e.Index},
		e:     e,
		photo: ctx.load(KindEntry, e.Index, e.Photo),
	}
}

// HasPhoto reports whether the entry draws a photo.
func (b *Entry) HasPhoto() bool { return b.photo != nil }

type entryLayout struct {
	paras   []para
	status  string
	statusX float64
	photo   imgplace.Rect
	height  float64
}

// PhotoBeside reports whether a photo goes to the right of the text for a
// content area of the given width.
func PhotoBeside(width float64) bool {
	return width-photoWidth-columnGap >= minTextWidth
}

func (b *Entry) layout(ctx *Context) entryLayout {
	c := ctx.Canvas
	x, width := ctx.Left(), ctx.Width()
	beside := b.photo != nil && PhotoBeside(width)
	textW := width
	if beside {
		textW = width - photoWidth - columnGap
	}

	var l entryLayout
	l.status = b.e.Status.Label()
	c.SetFont(canvas.Bold, bodySize)
	statusW := c.StringWidth(l.status)
	l.statusX = x + textW - statusW

	y := 0.0
	add := func(p para) {
		p.dy = y
		y += p.height()
		l.paras = append(l.paras, p)
	}

	heading := strconv.Itoa(b.e.Index) + ". " + b.e.QuestionPrimary
	add(newPara(c, heading, shape.LTR, canvas.Bold, bodySize, x, textW-statusW-statusGap))
	if b.e.QuestionSecondary != "" {
		add(newPara(c, b.e.QuestionSecondary, shape.RTL, canvas.Regular, bodySize, x, textW))
	}
	if b.e.Observation != "" {
		add(newPara(c, "Obs: "+b.e.Observation, shape.LTR, canvas.Regular, smallSize, x+indent, textW-indent))
	}
	if code := b.e.CodeLine(); code != "" {
		p := newPara(c, "Code: "+code, shape.LTR, canvas.Regular, smallSize, x+indent, textW-indent)
		p.color = canvas.Gray
		add(p)
	}
	l.height = y

	if b.photo != nil {
		anchor := ctx.Placer.Anchor()
		if beside {
			box := imgplace.Rect{X: x + textW + columnGap, Y: 0, W: photoWidth, H: photoHeight}
			l.photo = imgplace.Fit(b.photo, box, anchor)
			l.height = max(l.height, l.photo.Bottom())
		} else {
			box := imgplace.Rect{X: x + indent, Y: y + 1, W: min(belowPhotoWidth, width-indent), H: belowPhotoHeight}
			l.photo = imgplace.Fit(b.photo, box, anchor)
			l.height = l.photo.Bottom()
		}
	}
	l.height += entrySpacing
	return l
}

func (b *Entry) Measure(ctx *Context) float64 { return b.layout(ctx).height }

func (b *Entry) Draw(ctx *Context, y float64) {
	c := ctx.Canvas
	l := b.layout(ctx)
	for _, p := range l.paras {
		p.draw(c, y)
	}

	c.SetFont(canvas.Bold, bodySize)
	c.SetTextColor(statusColors[b.e.Status])
	c.Text(l.statusX, baseline(y, bodySize), l.status)
	c.SetTextColor(canvas.Black)

	if b.photo != nil {
		r := l.photo
		r.Y += y
		c.Image(b.photo, r)
	}

	c.SetDrawColor(canvas.LightGray)
	c.SetLineWidth(0.1)
	sep := y + l.height - entrySpacing/2
	c.Line(ctx.Left(), sep, ctx.Left()+ctx.Width(), sep)
	c.SetDrawColor(canvas.Black)
}
