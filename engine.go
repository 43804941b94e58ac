// Package inspectreport renders inspection reports to PDF.
//
// An Engine takes an inspection.Document and composes it into A4 pages:
// branding header, building information, a status summary, the bilingual
// checklist with photos and code references, notes, corrective actions and
// the signature block. Every page gets a footer chosen by the document's
// footer policy. Blocks are measured before they are placed; a block that
// does not fit moves to a new page, and checklist pages continue under a
// repeated header.
//
// Engines are immutable after New and safe for concurrent use. Each Render
// call owns its own PDF writer and page cursor.
//
//	res, err := inspectreport.New().Render(doc)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("report.pdf", res.PDF, 0o644)
package inspectreport

import (
	"sync"
	"time"

	"github.com/lvillar/inspectreport/blocks"
	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/fonts"
	"github.com/lvillar/inspectreport/imgplace"
	"github.com/lvillar/inspectreport/inspection"
	"github.com/lvillar/inspectreport/layout"
)

// writer is the canvas Render composes on and serializes.
type writer interface {
	canvas.Canvas
	SetDate(t time.Time)
	Bytes() ([]byte, error)
}

func newPDFWriter(face *fonts.Face, w, h float64) writer {
	return canvas.NewPDF(face, w, h)
}

// Engine composes inspection documents.
type Engine struct {
	cfg    engineConfig
	placer *imgplace.Placer
}

// New returns an engine. Without WithFont or WithFontPath it uses
// fonts.Default. A font fallback is logged once, here, at warn level.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.face == nil {
		cfg.face = fonts.Default()
	}
	if err := cfg.face.Err; err != nil {
		cfg.logger.Warn().Err(err).
			Str("family", cfg.face.Family).
			Stringer("source", cfg.face.Source).
			Str("path", cfg.face.Path).
			Msg("unicode font unavailable, right-to-left text will not be shaped correctly")
	}
	return &Engine{
		cfg:    *cfg,
		placer: imgplace.NewPlacer(imgplace.WithAnchor(cfg.anchor), imgplace.WithMaxPixels(cfg.maxPixels)),
	}
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Render renders doc with an engine using the default options.
func Render(doc *inspection.Document) (*Result, error) {
	defaultOnce.Do(func() { defaultEngine = New() })
	return defaultEngine.Render(doc)
}

// Font returns the face the engine draws with.
func (e *Engine) Font() *fonts.Face { return e.cfg.face }

// Geometry returns the page geometry.
func (e *Engine) Geometry() layout.Geometry { return e.cfg.geometry }

// Render validates doc, composes it and serializes the PDF. Input errors
// and writer failures abort the call and no bytes are returned. Image
// problems are reported in Result.Diagnostics.
func (e *Engine) Render(doc *inspection.Document) (*Result, error) {
	start := time.Now()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := e.cfg.geometry.Validate(); err != nil {
		return nil, newRenderError("Render", err)
	}

	g := e.cfg.geometry
	pdf := e.cfg.newWriter(e.cfg.face, g.PageWidth, g.PageHeight)
	pdf.SetDate(doc.CompletedAt)

	id := ReportID(doc)
	lay, diags, err := e.compose(pdf, doc, id)
	if err != nil {
		return nil, err
	}
	out, err := pdf.Bytes()
	if err != nil {
		return nil, serialization("Output", err)
	}

	e.cfg.logger.Debug().
		Str("report_id", id).
		Int("pages", len(lay.Pages)).
		Int("entries", len(doc.Checklist)).
		Int("diagnostics", len(diags)).
		Int("bytes", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("report rendered")

	return &Result{
		PDF:         out,
		Pages:       len(lay.Pages),
		Layout:      lay,
		Diagnostics: diags,
		ReportID:    id,
	}, nil
}

// Compose lays doc out on c without serializing it. It is what Render does
// before writing the PDF, and works with any canvas, such as a
// canvas.Recorder.
func (e *Engine) Compose(c canvas.Canvas, doc *inspection.Document) (*Layout, []inspection.Diagnostic, error) {
	if err := doc.Validate(); err != nil {
		return nil, nil, err
	}
	if err := e.cfg.geometry.Validate(); err != nil {
		return nil, nil, newRenderError("Compose", err)
	}
	return e.compose(c, doc, ReportID(doc))
}

// sequence builds the blocks in document order. Images are decoded here.
func (e *Engine) sequence(ctx *blocks.Context, doc *inspection.Document, id string) []blocks.Block {
	var seq []blocks.Block
	add := func(b blocks.Block) { seq = append(seq, b) }

	add(blocks.NewHeader(ctx, doc.BrandingLogo, doc.Footer.Organization()))
	if h := blocks.NewHero(ctx, doc.HeroImage); h != nil {
		add(h)
	}
	add(blocks.NewBuildingInfo(doc))
	if len(doc.Checklist) > 0 {
		add(blocks.NewSummary(doc))
		add(blocks.NewChecklistTitle())
		for _, entry := range doc.Checklist {
			add(blocks.NewEntry(ctx, entry))
		}
	}
	if n := blocks.NewNotes(doc.Notes); n != nil {
		add(n)
	}
	if a := blocks.NewCorrectiveActions(doc.CorrectiveActions); a != nil {
		add(a)
	}
	add(blocks.NewSignature(ctx, doc.SignatureImage, doc.InspectorName, id, e.cfg.code))
	return seq
}

func (e *Engine) compose(c canvas.Canvas, doc *inspection.Document, id string) (*Layout, []inspection.Diagnostic, error) {
	g := e.cfg.geometry
	ctx := blocks.NewContext(c, g, e.placer)

	c.SetMeta(canvas.Meta{
		Title:   "Inspection Report - " + doc.BuildingName,
		Author:  doc.InspectorName,
		Subject: "Inspection " + id,
		Creator: e.cfg.creator,
	})

	footer := blocks.Footer{Text: doc.Footer.Text(e.cfg.attribution)}
	if doc.Footer.Branded() {
		if err := c.SetBackground(doc.Letterhead); err != nil {
			ctx.Report(blocks.KindLetterhead, 0, err)
		}
	} else if e.cfg.watermark {
		footer.Watermark = inspection.DefaultOrganization
	}

	seq := e.sequence(ctx, doc, id)
	cont := blocks.NewContinuation()
	cur := layout.NewCursor(g)
	lay := &Layout{}

	startPage := func() {
		c.AddPage()
		footer.DrawWatermark(ctx)
		lay.addPage(c.PageNo(), footer.Text)
	}
	startPage()

	for _, b := range seq {
		h := b.Measure(ctx)
		if cur.Needs(h) {
			footer.Draw(ctx, c.PageNo())
			cur.NewPage()
			startPage()
			if b.Kind() == blocks.KindEntry {
				cont.Draw(ctx, cur.Y())
				cur.Reserve(cont.Measure(ctx))
				lay.place(cont)
			}
		}
		b.Draw(ctx, cur.Y())
		cur.Advance(h)
		lay.place(b)

		if err := c.Err(); err != nil {
			return nil, nil, serialization("Compose", err)
		}
	}
	footer.Draw(ctx, c.PageNo())
	if err := c.Err(); err != nil {
		return nil, nil, serialization("Compose", err)
	}

	diags := ctx.Diagnostics()
	for _, d := range diags {
		e.cfg.logger.Warn().Err(d.Err).Str("block", d.Block).Int("entry", d.Entry).Msg("asset skipped")
	}
	return lay, diags, nil
}
