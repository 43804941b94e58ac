package inspectreport

import "github.com/lvillar/inspectreport/fonts"

// Writer exposes the serializing canvas to tests.
type Writer = writer

// WithWriter replaces the PDF writer used by Render.
func WithWriter(f func(face *fonts.Face, w, h float64) Writer) Option {
	return func(c *engineConfig) {
		c.newWriter = f
	}
}
