package blocks

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"
	pdf417 "github.com/ruudk/golang-pdf417"
)

// CodeKind selects the 2D symbol printed next to the signature.
type CodeKind int

const (
	CodeQR CodeKind = iota
	CodeDataMatrix
	CodeNone
	CodePDF417
)

func (k CodeKind) String() string {
	switch k {
	case CodeQR:
		return "qr"
	case CodeDataMatrix:
		return "datamatrix"
	case CodePDF417:
		return "pdf417"
	}
	return "none"
}

// ParseCodeKind accepts "qr", "datamatrix", "pdf417" and "none".
func ParseCodeKind(s string) (CodeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "qr":
		return CodeQR, nil
	case "datamatrix", "data-matrix":
		return CodeDataMatrix, nil
	case "pdf417":
		return CodePDF417, nil
	case "none", "off":
		return CodeNone, nil
	}
	return CodeNone, fmt.Errorf("blocks: unknown code kind %q", s)
}

// codePixels is the edge of the rendered square symbol bitmap. PDF417
// symbols are scaled by whole modules up to this width.
const codePixels = 240

const (
	pdf417Columns  = 6
	pdf417Security = 2
)

// VerificationCode renders content as a PNG symbol. CodeNone yields nil.
func VerificationCode(kind CodeKind, content string) ([]byte, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch kind {
	case CodeQR:
		bc, err = qr.Encode(content, qr.M, qr.Auto)
	case CodeDataMatrix:
		bc, err = datamatrix.Encode(content)
	case CodePDF417:
		bc = pdf417.Encode(content, pdf417Columns, pdf417Security)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blocks: encoding %s: %w", kind, err)
	}
	w, h := codePixels, codePixels
	if kind == CodePDF417 {
		b := bc.Bounds()
		f := max(1, codePixels/b.Dx())
		w, h = b.Dx()*f, b.Dy()*f
	}
	bc, err = barcode.Scale(bc, w, h)
	if err != nil {
		return nil, fmt.Errorf("blocks: scaling %s: %w", kind, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, bc); err != nil {
		return nil, fmt.Errorf("blocks: encoding %s png: %w", kind, err)
	}
	return buf.Bytes(), nil
}
