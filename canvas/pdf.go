package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"

	"github.com/lvillar/inspectreport/fonts"
	"github.com/lvillar/inspectreport/imgplace"
)

// PDF is a Canvas backed by an fpdf document. Every render owns its own
// PDF value; it is not safe for concurrent use.
type PDF struct {
	f    *fpdf.Fpdf
	face *fonts.Face
	// tr maps UTF-8 to cp1252 when only the core font is available.
	tr func(string) string

	w, h   float64
	style  string
	size   float64
	images map[string]bool
	bg     *background
}

type background struct {
	imp *gofpdi.Importer
	tpl int
}

// NewPDF returns an empty document with pages of w x h millimetres.
func NewPDF(face *fonts.Face, w, h float64) *PDF {
	if face == nil {
		face = fonts.Core()
	}
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCatalogSort(true)
	f.AliasNbPages(PageAlias)

	p := &PDF{f: f, face: face, w: w, h: h, size: 10, images: make(map[string]bool)}
	if face.Unicode() {
		f.AddUTF8FontFromBytes(face.Family, Regular, face.TTF)
		f.AddUTF8FontFromBytes(face.Family, Bold, face.TTF)
	} else {
		p.tr = f.UnicodeTranslatorFromDescriptor("")
	}
	f.SetFont(face.Family, Regular, p.size)
	return p
}

func (p *PDF) text(s string) string {
	if p.tr != nil {
		return p.tr(s)
	}
	return s
}

// AddPage starts a page and draws the background template on it.
func (p *PDF) AddPage() {
	p.f.AddPage()
	if p.bg != nil {
		p.bg.imp.UseImportedTemplate(p.f, p.bg.tpl, 0, 0, p.w, p.h)
	}
}

func (p *PDF) PageNo() int { return p.f.PageNo() }

func (p *PDF) PageSize() (float64, float64) { return p.w, p.h }

func (p *PDF) SetFont(style string, size float64) {
	p.style, p.size = style, size
	p.f.SetFont(p.face.Family, style, size)
}

func (p *PDF) FontSize() float64 { return p.size }

func (p *PDF) StringWidth(s string) float64 { return p.f.GetStringWidth(p.text(s)) }

func (p *PDF) SetTextColor(c Color) { p.f.SetTextColor(c.R, c.G, c.B) }

func (p *PDF) SetDrawColor(c Color) { p.f.SetDrawColor(c.R, c.G, c.B) }

func (p *PDF) SetFillColor(c Color) { p.f.SetFillColor(c.R, c.G, c.B) }

func (p *PDF) SetLineWidth(w float64) { p.f.SetLineWidth(w) }

func (p *PDF) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	p.f.Text(x, y, p.text(s))
}

func (p *PDF) Line(x1, y1, x2, y2 float64) { p.f.Line(x1, y1, x2, y2) }

func (p *PDF) Rect(x, y, w, h float64, style string) { p.f.Rect(x, y, w, h, style) }

// Image draws a decoded asset. Assets are registered once per document
// under their content name, so repeated photos are embedded once.
func (p *PDF) Image(a *imgplace.Asset, r imgplace.Rect) {
	if a == nil {
		return
	}
	opt := fpdf.ImageOptions{ImageType: a.Type}
	if !p.images[a.Name] {
		p.f.RegisterImageOptionsReader(a.Name, opt, bytes.NewReader(a.Data))
		p.images[a.Name] = true
	}
	p.f.ImageOptions(a.Name, r.X, r.Y, r.W, r.H, false, opt, 0, "")
}

// Stamp draws translucent rotated text centred on the page.
func (p *PDF) Stamp(s Stamp) {
	if s.Text == "" {
		return
	}
	p.f.SetFont(p.face.Family, Bold, s.Size)
	p.f.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	p.f.SetAlpha(s.Opacity, "Normal")

	txt := p.text(s.Text)
	tw := p.f.GetStringWidth(txt)
	cx, cy := p.w/2, p.h/2

	p.f.TransformBegin()
	p.f.TransformRotate(s.Angle, cx, cy)
	p.f.Text(cx-tw/2, cy+s.Size*25.4/72/3, txt)
	p.f.TransformEnd()

	p.f.SetAlpha(1, "Normal")
	p.f.SetFont(p.face.Family, p.style, p.size)
}

// SetBackground imports the first page of a PDF as a template. The
// importer panics on malformed input; that is reported as an error and
// the document continues without a background.
func (p *PDF) SetBackground(data []byte) (err error) {
	if len(data) == 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("canvas: letterhead: %v", r)
		}
	}()
	rs := io.ReadSeeker(bytes.NewReader(data))
	imp := gofpdi.NewImporter()
	tpl := imp.ImportPageFromStream(p.f, &rs, 1, "/MediaBox")
	p.bg = &background{imp: imp, tpl: tpl}
	return nil
}

func (p *PDF) SetMeta(m Meta) {
	p.f.SetTitle(m.Title, true)
	p.f.SetAuthor(m.Author, true)
	p.f.SetSubject(m.Subject, true)
	p.f.SetCreator(m.Creator, true)
}

// SetDate fixes the creation and modification dates. Without it the
// writer stamps the current time.
func (p *PDF) SetDate(t time.Time) {
	if t.IsZero() {
		return
	}
	p.f.SetCreationDate(t)
	p.f.SetModificationDate(t)
}

func (p *PDF) Err() error {
	if p.f.Err() {
		return p.f.Error()
	}
	return nil
}

// ErrEmpty is returned when writing a document without pages.
var ErrEmpty = errors.New("canvas: document has no pages")

// Output writes the finished document to w.
func (p *PDF) Output(w io.Writer) error {
	if p.f.PageNo() == 0 {
		return ErrEmpty
	}
	return p.f.Output(w)
}

// Bytes returns the finished document.
func (p *PDF) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
