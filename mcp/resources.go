package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/lvillar/inspectreport"
	"github.com/lvillar/inspectreport/inspection"
)

// RegisterDefaultResources adds the read-only inspection resources.
func RegisterDefaultResources(s *Server, e *inspectreport.Engine) {
	s.AddResource(Resource{
		URI:         "inspection://status-labels",
		Name:        "Checklist Status Labels",
		Description: "Accepted checklist status values with their English and Arabic labels.",
		MIMEType:    "application/json",
		Handler:     handleStatusLabels,
	})

	s.AddResource(Resource{
		URI:         "inspection://font",
		Name:        "Report Font",
		Description: "The font the server renders with and whether it covers Arabic.",
		MIMEType:    "application/json",
		Handler: func(uri string) ([]ResourceContent, error) {
			return handleFont(e, uri)
		},
	})
}

func jsonContent(uri string, v any) ([]ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}, nil
}

func handleStatusLabels(uri string) ([]ResourceContent, error) {
	labels := make([]map[string]string, 0, 3)
	for _, st := range inspection.Statuses() {
		labels = append(labels, map[string]string{
			"status":   st.String(),
			"label":    st.Label(),
			"label_ar": st.SecondaryLabel(),
		})
	}
	return jsonContent(uri, map[string]any{"statuses": labels})
}

func handleFont(e *inspectreport.Engine, uri string) ([]ResourceContent, error) {
	face := e.Font()
	info := map[string]any{
		"family":  face.Family,
		"source":  face.Source.String(),
		"unicode": face.Unicode(),
		"arabic":  face.Arabic,
	}
	if face.Path != "" {
		info["path"] = face.Path
	}
	if face.Err != nil {
		info["error"] = face.Err.Error()
	}
	return jsonContent(uri, info)
}
