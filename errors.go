package inspectreport

import (
	"errors"
	"fmt"

	"github.com/lvillar/inspectreport/fonts"
	"github.com/lvillar/inspectreport/imgplace"
	"github.com/lvillar/inspectreport/inspection"
)

// Sentinel errors for the failure conditions of a render.
var (
	ErrInvalidInput  = inspection.ErrInvalidInput
	ErrSerialization = errors.New("inspectreport: document serialization failed")
	ErrFontMissing   = fonts.ErrFontMissing
	ErrUndecodable   = imgplace.ErrUndecodable
)

// InputError is returned when the document fails validation. Nothing is
// rendered.
type InputError = inspection.InputError

// RenderError represents an error that occurred during a specific render
// operation. It wraps an underlying error and includes the operation name
// for context.
type RenderError struct {
	Op  string // operation name, e.g. "Compose", "Output"
	Err error  // underlying error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inspectreport.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("inspectreport.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// SerializationError reports a failure of the PDF writer. It is the only
// error besides InputError that aborts a render; no bytes are returned.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("inspectreport: serialization: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSerialization) hold.
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// newRenderError wraps err with operation context.
func newRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}

func serialization(op string, err error) *RenderError {
	return newRenderError(op, &SerializationError{Err: err})
}
