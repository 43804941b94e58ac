package inspectreport

import (
	"github.com/rs/zerolog"

	"github.com/lvillar/inspectreport/blocks"
	"github.com/lvillar/inspectreport/fonts"
	"github.com/lvillar/inspectreport/imgplace"
	"github.com/lvillar/inspectreport/inspection"
	"github.com/lvillar/inspectreport/layout"
)

// Defaults of the page layout, in millimetres.
const (
	DefaultMargin        = 15.0
	DefaultFooterReserve = 25.0
)

// Option is a functional option for configuring an Engine via New.
type Option func(*engineConfig)

type engineConfig struct {
	geometry    layout.Geometry
	anchor      imgplace.Anchor
	maxPixels   int
	face        *fonts.Face
	logger      zerolog.Logger
	code        blocks.CodeKind
	attribution string
	watermark   bool
	creator     string
	newWriter   func(face *fonts.Face, w, h float64) writer
}

func defaultConfig() *engineConfig {
	return &engineConfig{
		geometry:    layout.A4(DefaultMargin, DefaultFooterReserve),
		anchor:      imgplace.TopLeft,
		maxPixels:   imgplace.DefaultMaxPixels,
		logger:      zerolog.Nop(),
		code:        blocks.CodeQR,
		attribution: inspection.DefaultAttribution,
		watermark:   true,
		creator:     "inspectreport",
		newWriter:   newPDFWriter,
	}
}

// WithPageSize sets the page size in millimetres. The default is A4.
func WithPageSize(width, height float64) Option {
	return func(c *engineConfig) {
		c.geometry.PageWidth = width
		c.geometry.PageHeight = height
	}
}

// WithMargins sets the page margins in millimetres.
func WithMargins(top, right, bottom, left float64) Option {
	return func(c *engineConfig) {
		c.geometry.Margins = layout.Margins{Top: top, Right: right, Bottom: bottom, Left: left}
	}
}

// WithFooterReserve sets the space kept free above the bottom margin for
// the footer.
func WithFooterReserve(h float64) Option {
	return func(c *engineConfig) {
		c.geometry.FooterReserve = h
	}
}

// WithImageAnchor places fitted images at the top-left corner (default) or
// the centre of their boxes.
func WithImageAnchor(a imgplace.Anchor) Option {
	return func(c *engineConfig) {
		c.anchor = a
	}
}

// WithMaxImagePixels sets the longest image side kept before downscaling.
func WithMaxImagePixels(n int) Option {
	return func(c *engineConfig) {
		c.maxPixels = n
	}
}

// WithFont uses face instead of the process-wide default font.
func WithFont(face *fonts.Face) Option {
	return func(c *engineConfig) {
		c.face = face
	}
}

// WithFontPath loads the font from a TrueType file.
func WithFontPath(path string) Option {
	return func(c *engineConfig) {
		c.face = fonts.Load(path)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithVerificationCode selects the symbol printed next to the signature.
func WithVerificationCode(k blocks.CodeKind) Option {
	return func(c *engineConfig) {
		c.code = k
	}
}

// WithAttribution replaces the footer text of watermarked documents.
func WithAttribution(text string) Option {
	return func(c *engineConfig) {
		c.attribution = text
	}
}

// WithWatermark turns the diagonal stamp on watermarked documents on or off.
func WithWatermark(on bool) Option {
	return func(c *engineConfig) {
		c.watermark = on
	}
}

// WithCreator sets the creator recorded in the PDF metadata.
func WithCreator(s string) Option {
	return func(c *engineConfig) {
		c.creator = s
	}
}
