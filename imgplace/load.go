package imgplace

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the longest side of an embedded image.
const DefaultMaxPixels = 1600

// Images above this many pixels are refused before decoding.
const maxDecodeArea = 80_000_000

// Asset is a decoded image ready for embedding.
type Asset struct {
	Name   string // stable name derived from the content
	Type   string // "JPG" or "PNG", as understood by the PDF writer
	Data   []byte
	Width  int // pixels
	Height int
}

// Placer loads images and fits them into boxes. A Placer has no mutable
// state and may be shared between goroutines.
type Placer struct {
	anchor    Anchor
	maxPixels int
}

// Option configures a Placer.
type Option func(*Placer)

// WithAnchor sets where fitted images sit inside their box.
func WithAnchor(a Anchor) Option {
	return func(p *Placer) { p.anchor = a }
}

// WithMaxPixels sets the longest side, in pixels, above which images are
// downscaled before embedding. Zero disables downscaling.
func WithMaxPixels(n int) Option {
	return func(p *Placer) { p.maxPixels = n }
}

// NewPlacer returns a Placer with top-left anchoring and DefaultMaxPixels.
func NewPlacer(opts ...Option) *Placer {
	p := &Placer{anchor: TopLeft, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Anchor returns the configured anchor.
func (p *Placer) Anchor() Anchor { return p.anchor }

// Load decodes data into an Asset. Empty data returns (nil, nil).
func (p *Placer) Load(data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &PlacementError{Kind: Undecodable, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &PlacementError{Kind: Undecodable, Err: fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height)}
	}
	if cfg.Width*cfg.Height > maxDecodeArea {
		return nil, &PlacementError{Kind: Unsupported, Err: fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &PlacementError{Kind: Undecodable, Err: err}
	}

	scaled := p.downscale(img)
	a := &Asset{Width: scaled.Bounds().Dx(), Height: scaled.Bounds().Dy()}

	var buf bytes.Buffer
	switch {
	case format == "jpeg" && scaled == img:
		a.Type, a.Data = "JPG", data
	case format == "jpeg":
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
			return nil, &PlacementError{Kind: Unsupported, Err: err}
		}
		a.Type, a.Data = "JPG", buf.Bytes()
	default:
		if err := png.Encode(&buf, toNRGBA(scaled)); err != nil {
			return nil, &PlacementError{Kind: Unsupported, Err: err}
		}
		a.Type, a.Data = "PNG", buf.Bytes()
	}

	sum := sha256.Sum256(a.Data)
	a.Name = "img-" + hex.EncodeToString(sum[:8])
	return a, nil
}

// downscale returns img unchanged when it fits the pixel limit.
func (p *Placer) downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if p.maxPixels <= 0 || max(w, h) <= p.maxPixels {
		return img
	}
	scale := float64(p.maxPixels) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// toNRGBA converts to 8 bits per channel so the PNG encoder never emits
// 16-bit or paletted data the PDF writer cannot embed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
