// Package inspection defines the render input of the report engine: an
// inspection record with its ordered bilingual checklist, branding assets
// and the footer policy resolved from the requesting user's subscription.
//
// Values of these types are read-only for the engine. Callers build them from
// their persisted records and hand them to inspectreport.Engine.Render.
package inspection

import (
	"fmt"
	"time"
)

// MaxCodeReferences is the number of code citations a checklist entry may carry.
const MaxCodeReferences = 2

// Document is a fully populated inspection record ready to be rendered.
type Document struct {
	BuildingName         string
	BuildingAddress      string
	InspectorName        string
	InspectorReferenceID string // civil defence id of the inspector

	ScheduledFor time.Time
	CompletedAt  time.Time

	BrandingLogo   []byte // PNG/JPEG, top-left of the first page
	HeroImage      []byte // large building/site photo
	SignatureImage []byte

	// Letterhead is an optional single page PDF drawn as background of every
	// page when Footer is branded.
	Letterhead []byte

	Checklist         []ChecklistEntry
	Notes             string
	CorrectiveActions []CorrectiveAction

	Footer FooterPolicy
}

// ChecklistEntry is one line of the inspection checklist.
type ChecklistEntry struct {
	Index             int    // 1-based position in the checklist
	QuestionPrimary   string // left-to-right language
	QuestionSecondary string // right-to-left language, optional
	Status            Status
	Observation       string
	CodeReferences    []string
	Photo             []byte
}

// CorrectiveAction is a follow-up task raised against a checklist entry.
type CorrectiveAction struct {
	EntryIndex        int
	Title             string
	Description       string
	ResponsiblePerson string
	Status            string
	DueDate           time.Time
}

// NewChecklist returns the entries with Index assigned by position, starting at 1.
// The input slice is not modified.
func NewChecklist(entries ...ChecklistEntry) []ChecklistEntry {
	out := make([]ChecklistEntry, len(entries))
	for i, e := range entries {
		e.Index = i + 1
		out[i] = e
	}
	return out
}

// Counts returns the number of entries per status.
func (d *Document) Counts() map[Status]int {
	counts := map[Status]int{Compliant: 0, NonCompliant: 0, Pending: 0}
	for _, e := range d.Checklist {
		counts[e.Status]++
	}
	return counts
}

// CodeLine returns the code references joined for display, or "" if none.
func (e ChecklistEntry) CodeLine() string {
	var s string
	for _, ref := range e.CodeReferences {
		if ref == "" {
			continue
		}
		if s != "" {
			s += " | "
		}
		s += ref
	}
	return s
}

// Diagnostic reports a non-fatal problem found while rendering, such as an
// image that could not be decoded. The document is still produced.
type Diagnostic struct {
	Block string // block kind, e.g. "entry", "hero", "signature"
	Entry int    // checklist index, 0 when the block is not an entry
	Err   error
}

func (d Diagnostic) String() string {
	if d.Entry > 0 {
		return fmt.Sprintf("%s #%d: %v", d.Block, d.Entry, d.Err)
	}
	return fmt.Sprintf("%s: %v", d.Block, d.Err)
}
