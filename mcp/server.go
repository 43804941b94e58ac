// Package mcp implements a Model Context Protocol (MCP) server that lets AI
// assistants validate inspection records and render them to PDF reports.
//
// The server communicates via JSON-RPC 2.0 over stdio and implements the
// MCP specification (2024-11-05) for tools and resources.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "inspectreport": {
//	      "command": "inspectreport",
//	      "args": ["mcp"]
//	    }
//	  }
//	}
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProtocolVersion is the MCP revision the server speaks.
const ProtocolVersion = "2024-11-05"

// ServerName is reported in the initialize handshake.
const ServerName = "inspectreport-mcp"

// Server is an MCP server that handles JSON-RPC 2.0 messages over stdio.
type Server struct {
	tools     map[string]Tool
	resources map[string]Resource
	input     io.Reader
	output    io.Writer
	version   string
	log       zerolog.Logger
	mu        sync.Mutex
}

// Tool defines an MCP tool that can be called by the client.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Handler     ToolHandler    `json:"-"`
}

// ToolHandler executes a tool. args holds the raw "arguments" object of the
// call so handlers can decode it into their own types.
type ToolHandler func(args json.RawMessage) (ToolResult, error)

// ToolResult is the result returned by a tool execution.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is a piece of content in a tool result.
type ContentBlock struct {
	Type     string `json:"type"` // "text" or "resource"
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"` // base64 for binary
}

func textResult(format string, args ...any) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}}}
}

// Resource defines an MCP resource.
type Resource struct {
	URI         string          `json:"uri"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MIMEType    string          `json:"mimeType,omitempty"`
	Handler     ResourceHandler `json:"-"`
}

// ResourceHandler reads a resource and returns its content.
type ResourceHandler func(uri string) ([]ResourceContent, error)

// ResourceContent is the content of a read resource.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"` // base64
}

type jsonrpcRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

// notification reports whether the sender expects no response.
func (r jsonrpcRequest) notification() bool { return r.ID == nil }

type jsonrpcResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id"`
	Result  any              `json:"result,omitempty"`
	Error   *jsonrpcError    `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
)

func rpcError(code int, message string, data any) *jsonrpcError {
	return &jsonrpcError{Code: code, Message: message, Data: data}
}

// method handles one JSON-RPC method and returns its result.
type method func(params json.RawMessage) (any, *jsonrpcError)

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request tracing. It must not write to
// the server's output stream.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer creates a new MCP server reading from stdin and writing to stdout.
func NewServer(opts ...Option) *Server {
	return NewServerWithIO(os.Stdin, os.Stdout, opts...)
}

// NewServerWithIO creates a new MCP server with custom I/O for testing.
func NewServerWithIO(in io.Reader, out io.Writer, opts ...Option) *Server {
	s := &Server{
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
		input:     in,
		output:    out,
		version:   "dev",
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTool registers a tool with the server.
func (s *Server) AddTool(t Tool) {
	s.tools[t.Name] = t
}

// AddResource registers a resource with the server.
func (s *Server) AddResource(r Resource) {
	s.resources[r.URI] = r
}

func (s *Server) methods() map[string]method {
	return map[string]method{
		"initialize":     s.initialize,
		"ping":           func(json.RawMessage) (any, *jsonrpcError) { return struct{}{}, nil },
		"tools/list":     s.listTools,
		"tools/call":     s.callTool,
		"resources/list": s.listResources,
		"resources/read": s.readResource,
	}
}

// Run reads newline-delimited requests until EOF. Notifications are
// processed without a reply.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.input)
	// inline images make requests large
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	methods := s.methods()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonrpcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("malformed request")
			s.reply(nil, nil, rpcError(codeParseError, "Parse error", err.Error()))
			continue
		}
		if req.JSONRPC != "2.0" {
			s.reply(req.ID, nil, rpcError(codeInvalidRequest, "Invalid request", "jsonrpc must be \"2.0\""))
			continue
		}

		start := time.Now()
		handle, ok := methods[req.Method]
		if !ok {
			if !req.notification() {
				s.reply(req.ID, nil, rpcError(codeMethodNotFound, "Method not found", req.Method))
			}
			continue
		}
		result, rpcErr := handle(req.Params)
		s.log.Debug().Str("method", req.Method).Dur("elapsed", time.Since(start)).Msg("request")
		if !req.notification() {
			s.reply(req.ID, result, rpcErr)
		}
	}

	return scanner.Err()
}

func (s *Server) initialize(json.RawMessage) (any, *jsonrpcError) {
	return initializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: map[string]any{
			"tools":     map[string]any{},
			"resources": map[string]any{},
		},
		ServerInfo: serverInfo{Name: ServerName, Version: s.version},
	}, nil
}

func (s *Server) listTools(json.RawMessage) (any, *jsonrpcError) {
	tools := make([]Tool, 0, len(s.tools))
	for _, t := range s.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return map[string][]Tool{"tools": tools}, nil
}

func (s *Server) callTool(params json.RawMessage) (any, *jsonrpcError) {
	var call struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, rpcError(codeInvalidParams, "Invalid params", err.Error())
	}
	tool, ok := s.tools[call.Name]
	if !ok {
		return nil, rpcError(codeInvalidParams, "Unknown tool", call.Name)
	}

	args := call.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	result, err := s.runTool(tool, args)
	if err != nil {
		s.log.Info().Err(err).Str("tool", call.Name).Msg("tool failed")
		return ToolResult{
			Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil
	}
	return result, nil
}

// runTool reports a handler panic as a tool error.
func (s *Server) runTool(tool Tool, args json.RawMessage) (result ToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("tool", tool.Name).Interface("panic", r).Msg("tool panicked")
			err = fmt.Errorf("%s: internal error: %v", tool.Name, r)
		}
	}()
	return tool.Handler(args)
}

func (s *Server) listResources(json.RawMessage) (any, *jsonrpcError) {
	resources := make([]Resource, 0, len(s.resources))
	for _, r := range s.resources {
		resources = append(resources, r)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].URI < resources[j].URI })
	return map[string][]Resource{"resources": resources}, nil
}

func (s *Server) readResource(params json.RawMessage) (any, *jsonrpcError) {
	var read struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(params, &read); err != nil {
		return nil, rpcError(codeInvalidParams, "Invalid params", err.Error())
	}
	resource, ok := s.resources[read.URI]
	if !ok {
		return nil, rpcError(codeInvalidParams, "Unknown resource", read.URI)
	}
	contents, err := resource.Handler(read.URI)
	if err != nil {
		return nil, rpcError(codeInternal, "Resource error", err.Error())
	}
	return map[string][]ResourceContent{"contents": contents}, nil
}

// reply writes one response line. Exactly one of result and rpcErr is used.
func (s *Server) reply(id *json.RawMessage, result any, rpcErr *jsonrpcError) {
	resp := jsonrpcResponse{JSONRPC: "2.0", ID: id}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("encoding response")
		return
	}
	if _, err := s.output.Write(append(data, '\n')); err != nil {
		s.log.Error().Err(err).Msg("writing response")
	}
}
