package inspection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is matched by every *InputError.
var ErrInvalidInput = errors.New("inspection: invalid input")

// InputError describes a malformed document. It is returned before any
// rendering takes place; the caller can correct the field and resubmit.
type InputError struct {
	Field  string // e.g. "BuildingName", "Checklist[3].Status"
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("inspection: invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) hold for input errors.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the document invariants and returns the first violation.
func (d *Document) Validate() error {
	if d == nil {
		return invalid("Document", "is nil")
	}
	if strings.TrimSpace(d.BuildingName) == "" {
		return invalid("BuildingName", "must not be empty")
	}
	if strings.TrimSpace(d.InspectorName) == "" {
		return invalid("InspectorName", "must not be empty")
	}

	prev := 0
	for i, e := range d.Checklist {
		field := fmt.Sprintf("Checklist[%d]", i)
		if e.Index <= prev {
			return invalid(field+".Index", "%d is not strictly increasing (previous %d)", e.Index, prev)
		}
		prev = e.Index
		if !e.Status.Valid() {
			return invalid(field+".Status", "unknown value %d", int(e.Status))
		}
		if len(e.CodeReferences) > MaxCodeReferences {
			return invalid(field+".CodeReferences", "has %d entries, at most %d allowed",
				len(e.CodeReferences), MaxCodeReferences)
		}
		if strings.TrimSpace(e.QuestionPrimary) == "" && strings.TrimSpace(e.QuestionSecondary) == "" {
			return invalid(field+".QuestionPrimary", "entry has no question text")
		}
	}

	for i, a := range d.CorrectiveActions {
		if strings.TrimSpace(a.Title) == "" {
			return invalid(fmt.Sprintf("CorrectiveActions[%d].Title", i), "must not be empty")
		}
	}
	return nil
}
