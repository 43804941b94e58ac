package inspection

import (
	"fmt"
	"strings"
)

// Status is the outcome recorded for a checklist entry.
type Status int

const (
	Pending Status = iota
	Compliant
	NonCompliant
)

var statusNames = map[Status]string{
	Pending:      "Pending",
	Compliant:    "Compliant",
	NonCompliant: "Non-Compliant",
}

// Secondary-language labels, logical order.
var statusLabelsAR = map[Status]string{
	Pending:      "قيد الانتظار",
	Compliant:    "مطابق",
	NonCompliant: "غير مطابق",
}

// Statuses lists all statuses in presentation order.
func Statuses() []Status {
	return []Status{Compliant, NonCompliant, Pending}
}

// String returns the canonical name used by the data-entry forms.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Valid reports whether s is one of the three defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Label returns the bracketed label drawn next to the primary question.
func (s Status) Label() string {
	return "[" + s.String() + "]"
}

// SecondaryLabel returns the right-to-left language name of the status.
func (s Status) SecondaryLabel() string {
	return statusLabelsAR[s]
}

// ParseStatus accepts the names stored by the forms ("Compliant",
// "Non-Compliant", "Pending") ignoring case, spaces, dashes and underscores.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "compliant":
		return Compliant, nil
	case "noncompliant":
		return NonCompliant, nil
	case "pending", "":
		return Pending, nil
	}
	return Pending, fmt.Errorf("inspection: unknown status %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("inspection: invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
