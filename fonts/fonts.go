// Package fonts loads the Unicode font used for report text.
//
// The font is resolved once per process: a TrueType file (DejaVu Sans or
// Amiri work well for Arabic), then the embedded Go Regular face, which has
// no Arabic glyphs, and finally the core Helvetica font, which can only
// show cp1252 text. The outcome is kept in a Face value that never changes
// after loading and can be shared by concurrent renders.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// DefaultPath is the font file looked up when nothing else is configured.
const DefaultPath = "DejaVuSans.ttf"

// EnvFontPath names the environment variable that overrides DefaultPath.
const EnvFontPath = "INSPECTREPORT_FONT"

// ErrFontMissing is reported when the configured Unicode font could not be
// used. Rendering continues with a fallback face.
var ErrFontMissing = errors.New("fonts: unicode font resource missing")

// Source tells where the face data came from.
type Source int

const (
	SourceFile Source = iota
	SourceEmbedded
	SourceCore
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEmbedded:
		return "embedded"
	}
	return "core"
}

// Face is the resolved report font.
type Face struct {
	Family string // name the face is registered under in a PDF
	TTF    []byte // nil for the core font
	Source Source
	Path   string // file that was tried, if any
	Arabic bool   // the face has Arabic presentation form glyphs

	// Err is non-nil when the configured font could not be loaded and a
	// fallback is in use. It matches ErrFontMissing.
	Err error
}

// Unicode reports whether the face can encode arbitrary Unicode text.
func (f *Face) Unicode() bool { return f.TTF != nil }

// Core returns the Helvetica face used when no TrueType data is available.
func Core() *Face {
	return &Face{Family: "Helvetica", Source: SourceCore, Err: ErrFontMissing}
}

// FromBytes builds a face from TrueType data.
func FromBytes(family string, ttf []byte) (*Face, error) {
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("fonts: parsing %s: %w", family, err)
	}
	return &Face{
		Family: family,
		TTF:    ttf,
		Source: SourceFile,
		Arabic: hasGlyph(f, 0xFE91) && hasGlyph(f, 0xFEFB),
	}, nil
}

func hasGlyph(f *sfnt.Font, r rune) bool {
	var buf sfnt.Buffer
	gi, err := f.GlyphIndex(&buf, r)
	return err == nil && gi != 0
}

// Load resolves the face for path, falling back to the embedded Go Regular
// face and then to the core font. It never fails; the returned face records
// the reason for any fallback in Err.
func Load(path string) *Face {
	data, err := os.ReadFile(path)
	if err == nil {
		var face *Face
		face, err = FromBytes("ReportSans", data)
		if err == nil {
			face.Path = path
			if !face.Arabic {
				face.Err = fmt.Errorf("%w: %s has no Arabic glyphs", ErrFontMissing, path)
			}
			return face
		}
	}
	missing := fmt.Errorf("%w: %v", ErrFontMissing, err)

	face, gerr := FromBytes("GoRegular", goregular.TTF)
	if gerr != nil {
		core := Core()
		core.Path = path
		core.Err = missing
		return core
	}
	face.Source = SourceEmbedded
	face.Path = path
	face.Err = missing
	return face
}

var (
	defaultOnce sync.Once
	defaultFace *Face
)

// Default returns the process-wide face, loading it on first use from
// $INSPECTREPORT_FONT or DefaultPath.
func Default() *Face {
	defaultOnce.Do(func() {
		path := os.Getenv(EnvFontPath)
		if path == "" {
			path = DefaultPath
		}
		defaultFace = Load(path)
	})
	return defaultFace
}
