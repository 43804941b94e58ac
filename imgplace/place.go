// Package imgplace decodes report images and fits them into layout slots.
//
// Load normalizes raw bytes into an Asset the PDF writer can embed: JPEG data
// is kept as is, every other supported format (PNG, GIF, WebP, BMP, TIFF) is
// re-encoded as an 8-bit non-interlaced PNG, and images larger than the
// configured pixel limit are downscaled first. Fit then computes an
// aspect-preserving rectangle inside a box.
package imgplace

import (
	"errors"
	"fmt"
)

// ErrUndecodable matches every placement error caused by bad image data.
var ErrUndecodable = errors.New("imgplace: image data cannot be decoded")

// ErrKind classifies placement failures.
type ErrKind int

const (
	Undecodable ErrKind = iota
	Unsupported
)

// PlacementError reports why image bytes could not be turned into an Asset.
type PlacementError struct {
	Kind ErrKind
	Err  error
}

func (e *PlacementError) Error() string {
	if e.Kind == Unsupported {
		return fmt.Sprintf("imgplace: unsupported image: %v", e.Err)
	}
	return fmt.Sprintf("imgplace: undecodable image: %v", e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// Is makes both kinds match ErrUndecodable; callers treat them alike.
func (e *PlacementError) Is(target error) bool { return target == ErrUndecodable }

// Rect is an axis aligned rectangle in page units, origin at the top left.
type Rect struct {
	X, Y, W, H float64
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Anchor positions the fitted image inside its box.
type Anchor int

const (
	TopLeft Anchor = iota
	Center
)

// Fit scales an image of the asset's size into box preserving the aspect
// ratio: scale = min(box.W/w, box.H/h). The result never exceeds the box.
func Fit(a *Asset, box Rect, anchor Anchor) Rect {
	if a == nil || a.Width <= 0 || a.Height <= 0 || box.W <= 0 || box.H <= 0 {
		return Rect{X: box.X, Y: box.Y}
	}
	return FitSize(float64(a.Width), float64(a.Height), box, anchor)
}

// FitSize is Fit for explicit image dimensions.
func FitSize(w, h float64, box Rect, anchor Anchor) Rect {
	scale := min(box.W/w, box.H/h)
	r := Rect{X: box.X, Y: box.Y, W: w * scale, H: h * scale}
	if anchor == Center {
		r.X += (box.W - r.W) / 2
		r.Y += (box.H - r.H) / 2
	}
	return r
}

// Placement is the result of Place. Present is false when there was no
// image to place; such a placement occupies no space.
type Placement struct {
	Present bool
	Rect    Rect
	Asset   *Asset
}

// Height returns the vertical space consumed by the placement.
func (p Placement) Height() float64 {
	if !p.Present {
		return 0
	}
	return p.Rect.H
}

// Place decodes data and fits it into box. Nil or empty data yields a
// placement with Present false and no error. Bad data yields an error
// matching ErrUndecodable; callers skip the image exactly as if it were
// absent.
func (p *Placer) Place(data []byte, box Rect) (Placement, error) {
	a, err := p.Load(data)
	if err != nil || a == nil {
		return Placement{}, err
	}
	return Placement{Present: true, Rect: Fit(a, box, p.anchor), Asset: a}, nil
}
