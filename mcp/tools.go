package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lvillar/inspectreport"
	"github.com/lvillar/inspectreport/docspec"
	"github.com/lvillar/inspectreport/inspection"
)

// inspectionSchema describes the "inspection" argument. It mirrors
// docspec.File; images are objects with base64 "data" or a file "path".
var inspectionSchema = map[string]any{
	"type":        "object",
	"description": "Inspection record: building {name, address}, inspector {name, reference_id}, scheduled_for, completed_at, logo, hero_image, signature, letterhead, checklist [{question, question_ar, status, observation, nfpa_code, uae_code, code, photo}], notes, corrective_actions [{item, title, description, responsible, status, due_date}], subscription {subscribed, company_info, company_logo}",
	"required":    []string{"building", "inspector"},
}

// RegisterDefaultTools adds the inspection tools to the server. Reports are
// rendered with e.
func RegisterDefaultTools(s *Server, e *inspectreport.Engine) {
	s.AddTool(renderReportTool(e))
	s.AddTool(validateInspectionTool())
}

type inspectionArgs struct {
	Inspection json.RawMessage `json:"inspection"`
	BaseDir    string          `json:"baseDir"`
	OutputPath string          `json:"outputPath"`
}

func (a *inspectionArgs) document() (*inspection.Document, error) {
	if len(a.Inspection) == 0 || string(a.Inspection) == "null" {
		return nil, fmt.Errorf("missing 'inspection' argument")
	}
	f, err := docspec.Decode(a.Inspection, docspec.JSON)
	if err != nil {
		return nil, err
	}
	return f.Document(a.BaseDir)
}

func decodeArgs(raw json.RawMessage) (*inspectionArgs, error) {
	var args inspectionArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decoding arguments: %w", err)
	}
	return &args, nil
}

func renderReportTool(e *inspectreport.Engine) Tool {
	return Tool{
		Name:        "render_inspection_report",
		Description: "Render an inspection record to a bilingual (English/Arabic) PDF report with checklist, photos, signature and branding. Returns the PDF as base64 or writes it to outputPath.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"inspection": inspectionSchema,
				"baseDir": map[string]any{
					"type":        "string",
					"description": "Directory that relative image paths are resolved against.",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"inspection"},
		},
		Handler: func(raw json.RawMessage) (ToolResult, error) {
			return handleRender(e, raw)
		},
	}
}

func handleRender(e *inspectreport.Engine, raw json.RawMessage) (ToolResult, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return ToolResult{}, err
	}
	doc, err := args.document()
	if err != nil {
		return ToolResult{}, err
	}
	res, err := e.Render(doc)
	if err != nil {
		return ToolResult{}, fmt.Errorf("rendering report: %w", err)
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Report %s rendered: %d page(s), %d bytes", res.ReportID, res.Pages, len(res.PDF))
	for _, d := range res.Diagnostics {
		fmt.Fprintf(&summary, "\nwarning: %s", d)
	}

	if args.OutputPath != "" {
		if err := os.WriteFile(args.OutputPath, res.PDF, 0o644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		fmt.Fprintf(&summary, "\nsaved to %s", args.OutputPath)
		return textResult("%s", summary.String()), nil
	}

	return ToolResult{Content: []ContentBlock{
		{Type: "text", Text: summary.String()},
		{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(res.PDF)},
	}}, nil
}

func validateInspectionTool() Tool {
	return Tool{
		Name:        "validate_inspection",
		Description: "Check an inspection record without rendering it. Reports the first invalid field, or a summary of the checklist and the footer policy that will apply.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"inspection": inspectionSchema,
				"baseDir": map[string]any{
					"type":        "string",
					"description": "Directory that relative image paths are resolved against.",
				},
			},
			"required": []string{"inspection"},
		},
		Handler: handleValidate,
	}
}

func handleValidate(raw json.RawMessage) (ToolResult, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return ToolResult{}, err
	}
	doc, err := args.document()
	if err == nil {
		err = doc.Validate()
	}
	var ie *inspection.InputError
	if errors.As(err, &ie) {
		r := textResult("invalid: %s: %s", ie.Field, ie.Reason)
		r.IsError = true
		return r, nil
	}
	if err != nil {
		return ToolResult{}, err
	}

	counts := doc.Counts()
	var b bytes.Buffer
	fmt.Fprintf(&b, "valid: %d checklist entries", len(doc.Checklist))
	for _, st := range inspection.Statuses() {
		fmt.Fprintf(&b, ", %s %d", st, counts[st])
	}
	fmt.Fprintf(&b, "\nfooter: %s\nreport id: %s", doc.Footer, inspectreport.ReportID(doc))
	return textResult("%s", b.String()), nil
}
