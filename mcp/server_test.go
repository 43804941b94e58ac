package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lvillar/inspectreport"
	"github.com/lvillar/inspectreport/fonts"
)

func testEngine() *inspectreport.Engine {
	return inspectreport.New(inspectreport.WithFont(fonts.Core()))
}

func newTestServer() *Server {
	s := NewServerWithIO(nil, nil, WithVersion("test"))
	RegisterDefaultTools(s, testEngine())
	RegisterDefaultResources(s, testEngine())
	return s
}

func sendRequest(t *testing.T, s *Server, method string, id int, params any) jsonrpcResponse {
	t.Helper()

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}

	reqBytes, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	reqBytes = append(reqBytes, '\n')

	var output bytes.Buffer
	s.input = bytes.NewReader(reqBytes)
	s.output = &output

	if err := s.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response %q: %v", output.String(), err)
	}
	return resp
}

// callTool runs a tools/call request and returns the decoded tool result.
func callTool(t *testing.T, s *Server, name string, args any) ToolResult {
	t.Helper()
	resp := sendRequest(t, s, "tools/call", 7, map[string]any{"name": name, "arguments": args})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	raw, _ := json.Marshal(resp.Result)
	var result ToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decoding tool result %s: %v", raw, err)
	}
	return result
}

var sampleInspection = map[string]any{
	"building":     map[string]any{"name": "Marina Tower", "address": "Dubai Marina"},
	"inspector":    map[string]any{"name": "Sara Ali"},
	"completed_at": "2024-03-02T09:30:00Z",
	"checklist": []any{
		map[string]any{"question": "Exit signs lit?", "question_ar": "هل لافتات الخروج مضاءة؟", "status": "Compliant"},
		map[string]any{"question": "Extinguishers serviced?", "status": "Non-Compliant", "nfpa_code": "NFPA 10 7.3"},
	},
}

func TestServerInitialize(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "initialize", 1, map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("result is not a map")
	}
	if result["protocolVersion"] != ProtocolVersion {
		t.Fatalf("unexpected protocol version: %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]any)
	if !ok {
		t.Fatal("missing serverInfo")
	}
	if serverInfo["name"] != ServerName || serverInfo["version"] != "test" {
		t.Fatalf("unexpected server info: %v", serverInfo)
	}
}

func TestServerToolsList(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "tools/list", 2, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	result := resp.Result.(map[string]any)
	tools, ok := result["tools"].([]any)
	if !ok {
		t.Fatal("tools is not an array")
	}

	var names []string
	for _, tool := range tools {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	want := []string{"render_inspection_report", "validate_inspection"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestServerResources(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "resources/list", 3, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	resources := resp.Result.(map[string]any)["resources"].([]any)
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}

	resp = sendRequest(t, s, "resources/read", 4, map[string]any{"uri": "inspection://status-labels"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	raw, _ := json.Marshal(resp.Result)
	for _, want := range []string{"Non-Compliant", "[Compliant]", "label_ar"} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("status labels missing %q: %s", want, raw)
		}
	}

	resp = sendRequest(t, s, "resources/read", 5, map[string]any{"uri": "inspection://font"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	raw, _ = json.Marshal(resp.Result)
	if !strings.Contains(string(raw), "Helvetica") {
		t.Errorf("font resource: %s", raw)
	}
}

func TestServerUnknownMethod(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "nonexistent/method", 5, nil)
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != codeMethodNotFound {
		t.Fatalf("expected error code %d, got %d", codeMethodNotFound, resp.Error.Code)
	}
}

func TestServerUnknownTool(t *testing.T) {
	s := newTestServer()

	resp := sendRequest(t, s, "tools/call", 6, map[string]any{
		"name":      "nonexistent_tool",
		"arguments": map[string]any{},
	})
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestRenderTool(t *testing.T) {
	s := newTestServer()

	result := callTool(t, s, "render_inspection_report", map[string]any{"inspection": sampleInspection})
	if result.IsError {
		t.Fatalf("tool error: %+v", result.Content)
	}
	if len(result.Content) != 2 {
		t.Fatalf("expected summary and pdf, got %d blocks", len(result.Content))
	}
	if !strings.Contains(result.Content[0].Text, "1 page(s)") {
		t.Errorf("unexpected summary: %s", result.Content[0].Text)
	}
	pdf, err := base64.StdEncoding.DecodeString(result.Content[1].Data)
	if err != nil {
		t.Fatalf("decoding pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("tool output is not a PDF")
	}
}

func TestRenderToolOutputPath(t *testing.T) {
	s := newTestServer()
	out := filepath.Join(t.TempDir(), "report.pdf")

	result := callTool(t, s, "render_inspection_report", map[string]any{
		"inspection": sampleInspection,
		"outputPath": out,
	})
	if result.IsError {
		t.Fatalf("tool error: %+v", result.Content)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("saved file is not a PDF")
	}
}

func TestRenderToolInvalidInput(t *testing.T) {
	s := newTestServer()

	result := callTool(t, s, "render_inspection_report", map[string]any{
		"inspection": map[string]any{"building": map[string]any{"name": "B"}, "inspector": map[string]any{"name": ""}},
	})
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if !strings.Contains(result.Content[0].Text, "InspectorName") {
		t.Errorf("unexpected error text: %s", result.Content[0].Text)
	}

	result = callTool(t, s, "render_inspection_report", map[string]any{})
	if !result.IsError || !strings.Contains(result.Content[0].Text, "missing 'inspection'") {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestValidateTool(t *testing.T) {
	s := newTestServer()

	result := callTool(t, s, "validate_inspection", map[string]any{"inspection": sampleInspection})
	if result.IsError {
		t.Fatalf("tool error: %+v", result.Content)
	}
	text := result.Content[0].Text
	for _, want := range []string{"valid: 2 checklist entries", "Compliant 1", "Non-Compliant 1", "footer: watermarked", "report id: "} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}

	bad := map[string]any{
		"building":  map[string]any{"name": "B"},
		"inspector": map[string]any{"name": "I"},
		"checklist": []any{map[string]any{"question": "Q", "status": "unknown"}},
	}
	result = callTool(t, s, "validate_inspection", map[string]any{"inspection": bad})
	if !result.IsError || !strings.Contains(result.Content[0].Text, "checklist[0].status") {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestServerMultipleRequests(t *testing.T) {
	requests := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	}

	input := strings.Join(requests, "\n") + "\n"
	var output bytes.Buffer

	s := NewServerWithIO(strings.NewReader(input), &output)
	RegisterDefaultTools(s, testEngine())
	RegisterDefaultResources(s, testEngine())

	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 responses, got %d: %s", len(lines), output.String())
	}

	for i, line := range lines {
		var resp jsonrpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("response %d: unmarshal error: %v\nline: %s", i, err, line)
		}
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error: %s", i, resp.Error.Message)
		}
	}
}

func TestServerParseError(t *testing.T) {
	var output bytes.Buffer
	s := NewServerWithIO(strings.NewReader("{not json\n"), &output)
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != codeParseError {
		t.Fatalf("expected parse error, got %+v", resp)
	}
}

func TestServerNotificationsGetNoReply(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}
{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":1}}
{"jsonrpc":"2.0","method":"tools/list"}
`
	var output bytes.Buffer
	s := NewServerWithIO(strings.NewReader(input), &output)
	RegisterDefaultTools(s, testEngine())
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if output.Len() != 0 {
		t.Fatalf("expected no output, got %s", output.String())
	}
}

func TestServerRejectsWrongVersion(t *testing.T) {
	var output bytes.Buffer
	s := NewServerWithIO(strings.NewReader(`{"jsonrpc":"1.0","id":9,"method":"ping"}`+"\n"), &output)
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != codeInvalidRequest {
		t.Fatalf("expected invalid request, got %+v", resp)
	}
}

func TestServerToolPanic(t *testing.T) {
	s := newTestServer()
	s.AddTool(Tool{
		Name: "explode",
		Handler: func(json.RawMessage) (ToolResult, error) {
			panic("font table corrupt")
		},
	})

	result := callTool(t, s, "explode", nil)
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if !strings.Contains(result.Content[0].Text, "font table corrupt") {
		t.Fatalf("unexpected message: %s", result.Content[0].Text)
	}

	// the server keeps serving
	resp := sendRequest(t, s, "ping", 10, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
}
