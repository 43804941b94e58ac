package blocks

import (
	"strconv"
	"time"

	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/inspection"
	"github.com/lvillar/inspectreport/shape"
	"github.com/lvillar/inspectreport/table"
)

const dateLayout = "02 Jan 2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if h, m, _ := t.Clock(); h != 0 || m != 0 {
		return t.Format(dateLayout + " 15:04")
	}
	return t.Format(dateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// addText adds a cell whose direction follows its content.
func addText(r *table.Row, s string) *table.Cell {
	c := r.AddCell(s)
	if shape.DirectionOf(s) == shape.RTL {
		c.SetRTL()
	}
	return c
}

// BuildingInfo lists the building and inspector fields.
type BuildingInfo struct {
	base
	doc *inspection.Document
}

func NewBuildingInfo(doc *inspection.Document) *BuildingInfo {
	return &BuildingInfo{base: base{kind: KindBuildingInfo}, doc: doc}
}

func (b *BuildingInfo) table(ctx *Context) *table.Table {
	t := table.New(ctx.Canvas, ctx.Width())
	t.SetColumnWidths(45, 0)

	h := t.AddHeaderRow()
	h.AddCell(bilingual(buildingTitle, buildingTitleAR)).SetColspan(2)

	row := func(label, value string) {
		r := t.AddRow()
		r.AddCell(label).SetBold(smallSize)
		addText(r, value)
	}
	d := b.doc
	row("Building", d.BuildingName)
	row("Address", orDash(d.BuildingAddress))
	row("Inspector", d.InspectorName)
	row("Reference ID", orDash(d.InspectorReferenceID))
	if !d.ScheduledFor.IsZero() {
		row("Scheduled", formatDate(d.ScheduledFor))
	}
	if !d.CompletedAt.IsZero() {
		row("Completed", formatDate(d.CompletedAt))
	}
	return t
}

func (b *BuildingInfo) Measure(ctx *Context) float64 {
	return b.table(ctx).Measure() + spacing
}

func (b *BuildingInfo) Draw(ctx *Context, y float64) {
	b.table(ctx).Draw(ctx.Left(), y)
}

// Summary counts checklist entries per status.
type Summary struct {
	base
	counts map[inspection.Status]int
	total  int
}

func NewSummary(doc *inspection.Document) *Summary {
	return &Summary{base: base{kind: KindSummary}, counts: doc.Counts(), total: len(doc.Checklist)}
}

var statusColors = map[inspection.Status]canvas.Color{
	inspection.Compliant:    canvas.Green,
	inspection.NonCompliant: canvas.Red,
	inspection.Pending:      canvas.Amber,
}

func (b *Summary) table(ctx *Context) *table.Table {
	t := table.New(ctx.Canvas, ctx.Width())
	t.SetColumns(
		table.ColumnDef{Align: "C"}, table.ColumnDef{Align: "C"},
		table.ColumnDef{Align: "C"}, table.ColumnDef{Align: "C"},
	)
	h := t.AddHeaderRow()
	r := t.AddRow()
	for _, s := range inspection.Statuses() {
		h.AddCell(s.String()).SetTextColor(statusColors[s])
		r.AddCell(strconv.Itoa(b.counts[s]))
	}
	h.AddCell("Total")
	r.AddCell(strconv.Itoa(b.total))
	return t
}

func (b *Summary) Measure(ctx *Context) float64 {
	return b.table(ctx).Measure() + spacing
}

func (b *Summary) Draw(ctx *Context, y float64) {
	b.table(ctx).Draw(ctx.Left(), y)
}

// sectionHeading is the bilingual title above notes and tables. The text
// is already shaped, so it is wrapped as left-to-right.
func sectionHeading(ctx *Context, primary, secondary string) para {
	return newPara(ctx.Canvas, bilingual(primary, secondary), shape.LTR, canvas.Bold, headSize-1, ctx.Left(), ctx.Width())
}

// Notes is free text written by the inspector.
type Notes struct {
	base
	text string
}

// NewNotes returns nil for empty notes.
func NewNotes(text string) *Notes {
	if text == "" {
		return nil
	}
	return &Notes{base: base{kind: KindNotes}, text: text}
}

func (b *Notes) paras(ctx *Context) (para, para) {
	head := sectionHeading(ctx, notesTitle, notesTitleAR)
	body := newPara(ctx.Canvas, b.text, shape.DirectionOf(b.text), canvas.Regular, smallSize, ctx.Left(), ctx.Width())
	body.dy = head.height() + 1
	return head, body
}

func (b *Notes) Measure(ctx *Context) float64 {
	head, body := b.paras(ctx)
	return head.height() + 1 + body.height() + spacing
}

func (b *Notes) Draw(ctx *Context, y float64) {
	head, body := b.paras(ctx)
	head.draw(ctx.Canvas, y)
	body.draw(ctx.Canvas, y)
}

// CorrectiveActions is the table of follow-up tasks.
type CorrectiveActions struct {
	base
	actions []inspection.CorrectiveAction
}

// NewCorrectiveActions returns nil when there are no actions.
func NewCorrectiveActions(actions []inspection.CorrectiveAction) *CorrectiveActions {
	if len(actions) == 0 {
		return nil
	}
	return &CorrectiveActions{base: base{kind: KindCorrectiveActions}, actions: actions}
}

func (b *CorrectiveActions) table(ctx *Context) *table.Table {
	t := table.New(ctx.Canvas, ctx.Width())
	t.SetColumns(
		table.ColumnDef{Width: 10, Align: "C"},
		table.ColumnDef{},
		table.ColumnDef{Width: 35},
		table.ColumnDef{Width: 25},
		table.ColumnDef{Width: 25},
	)
	h := t.AddHeaderRow()
	for _, s := range []string{"#", "Action", "Responsible", "Status", "Due"} {
		h.AddCell(s)
	}
	for _, a := range b.actions {
		r := t.AddRow()
		ref := "-"
		if a.EntryIndex > 0 {
			ref = strconv.Itoa(a.EntryIndex)
		}
		r.AddCell(ref)
		text := a.Title
		if a.Description != "" {
			text += "\n" + a.Description
		}
		addText(r, text)
		addText(r, orDash(a.ResponsiblePerson))
		r.AddCell(orDash(a.Status))
		due := "-"
		if !a.DueDate.IsZero() {
			due = a.DueDate.Format(dateLayout)
		}
		r.AddCell(due)
	}
	return t
}

func (b *CorrectiveActions) Measure(ctx *Context) float64 {
	head := sectionHeading(ctx, actionsTitle, actionsTitleAR)
	return head.height() + 1 + b.table(ctx).Measure() + spacing
}

func (b *CorrectiveActions) Draw(ctx *Context, y float64) {
	head := sectionHeading(ctx, actionsTitle, actionsTitleAR)
	head.draw(ctx.Canvas, y)
	b.table(ctx).Draw(ctx.Left(), y+head.height()+1)
}
