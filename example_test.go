package inspectreport_test

import (
	"fmt"
	"time"

	"github.com/lvillar/inspectreport"
	"github.com/lvillar/inspectreport/canvas"
	"github.com/lvillar/inspectreport/fonts"
	"github.com/lvillar/inspectreport/inspection"
)

func ExampleEngine_Render() {
	doc := &inspection.Document{
		BuildingName:    "Marina Tower",
		BuildingAddress: "Dubai Marina, Dubai",
		InspectorName:   "Sara Ali",
		CompletedAt:     time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC),
		Checklist: inspection.NewChecklist(
			inspection.ChecklistEntry{
				QuestionPrimary:   "Are exit signs illuminated?",
				QuestionSecondary: "هل لافتات الخروج مضاءة؟",
				Status:            inspection.Compliant,
			},
			inspection.ChecklistEntry{
				QuestionPrimary: "Are fire extinguishers serviced?",
				Status:          inspection.NonCompliant,
				Observation:     "Service tag expired",
				CodeReferences:  []string{"NFPA 10 7.3"},
			},
		),
		Footer: inspection.ResolveFooter(false, "", false),
	}

	res, err := inspectreport.New(inspectreport.WithFont(fonts.Core())).Render(doc)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Pages, len(res.Diagnostics), string(res.PDF[:5]))
	// Output: 1 0 %PDF-
}

func ExampleEngine_Compose() {
	doc := &inspection.Document{
		BuildingName:  "Marina Tower",
		InspectorName: "Sara Ali",
		Checklist: inspection.NewChecklist(
			inspection.ChecklistEntry{QuestionPrimary: "Exit doors unobstructed?", Status: inspection.Pending},
		),
		Footer: inspection.BrandedFooter("ACME Safety LLC"),
	}

	e := inspectreport.New()
	rec := canvas.NewRecorder(210, 297)
	lay, _, err := e.Compose(rec, doc)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range lay.Pages[0].Blocks {
		fmt.Println(b.Kind)
	}
	fmt.Println(lay.Pages[0].Footer)
	// Output:
	// header
	// building-info
	// summary
	// checklist-title
	// entry
	// signature
	// ACME Safety LLC
}

func ExampleReportID() {
	doc := &inspection.Document{BuildingName: "Marina Tower", InspectorName: "Sara Ali"}
	id := inspectreport.ReportID(doc)
	fmt.Println(len(id), id == inspectreport.ReportID(doc))
	// Output: 36 true
}
