package canvas

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lvillar/inspectreport/imgplace"
)

// OpKind names a recorded drawing operation.
type OpKind string

const (
	OpText       OpKind = "text"
	OpLine       OpKind = "line"
	OpRect       OpKind = "rect"
	OpImage      OpKind = "image"
	OpStamp      OpKind = "stamp"
	OpBackground OpKind = "background"
)

// Op is one recorded operation.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Text       string
	Style      string
	Size       float64
	Image      string // asset name
}

// Page holds the operations of one page in drawing order.
type Page struct {
	Number int
	Ops    []Op
}

// Texts returns the text of every text operation on the page.
func (p Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Contains reports whether some text operation contains sub.
func (p Page) Contains(sub string) bool {
	for _, t := range p.Texts() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// Recorder is a Canvas that records operations instead of writing PDF.
// Each rune is half an em wide, so measurements do not depend on a font
// file.
type Recorder struct {
	w, h  float64
	style string
	size  float64
	bg    bool
	meta  Meta
	pages []*Page
	err   error
}

var errNoPage = errors.New("canvas: drawing before the first page")

// NewRecorder returns a recorder with pages of w x h millimetres.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h, size: 10}
}

// MeasureWidth is the width the recorder assigns to s at size points.
func MeasureWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5 * 25.4 / 72
}

func (r *Recorder) AddPage() {
	r.pages = append(r.pages, &Page{Number: len(r.pages) + 1})
	if r.bg {
		r.add(Op{Kind: OpBackground, W: r.w, H: r.h})
	}
}

func (r *Recorder) PageNo() int { return len(r.pages) }

func (r *Recorder) PageSize() (float64, float64) { return r.w, r.h }

func (r *Recorder) SetFont(style string, size float64) { r.style, r.size = style, size }

func (r *Recorder) FontSize() float64 { return r.size }

func (r *Recorder) StringWidth(s string) float64 { return MeasureWidth(s, r.size) }

func (r *Recorder) SetTextColor(Color) {}

func (r *Recorder) SetDrawColor(Color) {}

func (r *Recorder) SetFillColor(Color) {}

func (r *Recorder) SetLineWidth(float64) {}

func (r *Recorder) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	r.add(Op{Kind: OpText, X: x, Y: y, Text: s, Style: r.style, Size: r.size})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.add(Op{Kind: OpLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *Recorder) Rect(x, y, w, h float64, style string) {
	r.add(Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Style: style})
}

func (r *Recorder) Image(a *imgplace.Asset, rect imgplace.Rect) {
	if a == nil {
		return
	}
	r.add(Op{Kind: OpImage, X: rect.X, Y: rect.Y, W: rect.W, H: rect.H, Image: a.Name})
}

func (r *Recorder) Stamp(s Stamp) {
	if s.Text == "" {
		return
	}
	r.add(Op{Kind: OpStamp, Text: s.Text, Size: s.Size})
}

// SetBackground accepts anything that looks like a PDF file.
func (r *Recorder) SetBackground(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return errors.New("canvas: letterhead: not a PDF file")
	}
	r.bg = true
	return nil
}

func (r *Recorder) SetMeta(m Meta) { r.meta = m }

// Meta returns the metadata set on the recorder.
func (r *Recorder) Meta() Meta { return r.meta }

func (r *Recorder) Err() error { return r.err }

func (r *Recorder) add(op Op) {
	if len(r.pages) == 0 {
		if r.err == nil {
			r.err = errNoPage
		}
		return
	}
	p := r.pages[len(r.pages)-1]
	p.Ops = append(p.Ops, op)
}

// Pages returns copies of the recorded pages with PageAlias replaced by
// the page count.
func (r *Recorder) Pages() []Page {
	total := strconv.Itoa(len(r.pages))
	out := make([]Page, len(r.pages))
	for i, p := range r.pages {
		ops := make([]Op, len(p.Ops))
		for j, op := range p.Ops {
			op.Text = strings.ReplaceAll(op.Text, PageAlias, total)
			ops[j] = op
		}
		out[i] = Page{Number: p.Number, Ops: ops}
	}
	return out
}
