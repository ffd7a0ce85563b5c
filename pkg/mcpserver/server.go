// Package mcpserver exports the tool registry over the Model Context
// Protocol. Every registered definition becomes an MCP tool whose calls
// are routed through the dispatcher.
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/greyflux/greymcp/pkg/errmodel"
	"github.com/greyflux/greymcp/pkg/tool"
)

// Server wraps an MCP server bound to a registry and dispatcher.
type Server struct {
	mcp        *mcp.Server
	registry   *tool.Registry
	dispatcher *tool.Dispatcher
}

// New builds the MCP server and exports every definition in reg, in
// registration order.
func New(name, version string, reg *tool.Registry, d *tool.Dispatcher) *Server {
	s := &Server{
		mcp:        mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		registry:   reg,
		dispatcher: d,
	}
	for _, def := range reg.List() {
		s.addTool(def)
	}
	return s
}

func (s *Server) addTool(def tool.Definition) {
	name := def.Name
	s.mcp.AddTool(&mcp.Tool{
		Name:        name,
		Description: def.Description,
		InputSchema: def.InputSchema(),
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: "arguments are not a JSON object: " + err.Error()}},
			}, nil
		}
		res := s.dispatcher.Dispatch(ctx, tool.Request{Tool: name, Args: args})
		if !res.OK() {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: res.Failure.Error()}},
			}, nil
		}
		text, err := json.Marshal(res.Output)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: "encoding result failed: " + err.Error()}},
			}, nil
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
			StructuredContent: res.Output,
		}, nil
	})
}

// decodeArguments normalizes the SDK's argument representation (raw JSON
// for untyped tools) into a parameter map.
func decodeArguments(v any) (map[string]any, error) {
	switch raw := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return raw, nil
	case json.RawMessage:
		if len(raw) == 0 {
			return nil, nil
		}
		var args map[string]any
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, err
		}
		return args, nil
	default:
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		var args map[string]any
		if err := json.Unmarshal(b, &args); err != nil {
			return nil, err
		}
		return args, nil
	}
}

// RunStdio serves a single session over stdin/stdout until ctx is done.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to a transport. Used by tests and in-memory
// clients.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// HTTPHandler serves the streamable HTTP transport at /mcp, a health
// check at /healthz, and tool discovery at /api/tools.
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/tools", s.handleListTools)
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return s.mcp }, nil))
	return otelhttp.NewHandler(mux, "greymcp")
}

// handleListTools exposes the declarative schemas so callers can inspect
// a tool's contract before invoking it.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errmodel.WriteHTTP(w, r, errmodel.Policy("method_not_allowed", "only GET is supported", nil))
		return
	}
	type toolInfo struct {
		Name        string       `json:"name"`
		Description string       `json:"description,omitempty"`
		Params      []tool.Param `json:"params"`
	}
	var out []toolInfo
	for _, def := range s.registry.List() {
		out = append(out, toolInfo{Name: def.Name, Description: def.Description, Params: def.Params})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"tools": out}); err != nil {
		errmodel.WriteHTTP(w, r, errmodel.System("encode", "encoding tool list failed", nil, err))
	}
}
