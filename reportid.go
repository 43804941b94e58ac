package inspectreport

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lvillar/inspectreport/inspection"
)

var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://inspectreport.dev/report"))

// ReportID derives a stable identifier from the document content. Any change
// to the building, inspector, dates or checklist yields a different id; images
// and branding do not take part.
func ReportID(doc *inspection.Document) string {
	var b strings.Builder
	field := func(s string) {
		b.WriteString(s)
		b.WriteByte(0x1f)
	}
	date := func(t time.Time) {
		if t.IsZero() {
			field("")
			return
		}
		field(t.UTC().Format(time.RFC3339))
	}

	field(doc.BuildingName)
	field(doc.BuildingAddress)
	field(doc.InspectorName)
	field(doc.InspectorReferenceID)
	date(doc.ScheduledFor)
	date(doc.CompletedAt)
	for _, e := range doc.Checklist {
		field(strconv.Itoa(e.Index))
		field(e.Status.String())
		field(e.QuestionPrimary)
		field(e.QuestionSecondary)
		field(e.Observation)
		field(e.CodeLine())
		b.WriteByte(0x1e)
	}
	return uuid.NewSHA1(reportNamespace, []byte(b.String())).String()
}
