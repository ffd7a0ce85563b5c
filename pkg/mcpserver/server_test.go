package mcpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/greyflux/greymcp/pkg/adapters/codesearch/fake"
	"github.com/greyflux/greymcp/pkg/errmodel"
	"github.com/greyflux/greymcp/pkg/tool"
	"github.com/greyflux/greymcp/pkg/tools"
)

func newTestServer(t *testing.T, search *fake.Client) *Server {
	t.Helper()
	reg := tool.NewRegistry()
	if err := tools.RegisterAll(reg, search); err != nil {
		t.Fatal(err)
	}
	return New("greymcp", "test", reg, tool.NewDispatcher(reg, nil))
}

func connect(t *testing.T, srv *Server) *mcp.ClientSession {
	t.Helper()
	ctx := t.Context()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestListToolsExportsAllFour(t *testing.T) {
	cs := connect(t, newTestServer(t, fake.New(0)))
	res, err := cs.ListTools(t.Context(), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, tl := range res.Tools {
		got[tl.Name] = true
		if tl.InputSchema == nil {
			t.Fatalf("%s has no input schema", tl.Name)
		}
	}
	for _, name := range []string{"greyscript_search", "greyscript_transpile", "greyscript_validate", "greyscript_generate"} {
		if !got[name] {
			t.Fatalf("tool %s not listed (got %v)", name, got)
		}
	}
}

func TestCallToolSuccess(t *testing.T) {
	cs := connect(t, newTestServer(t, fake.New(0)))
	res, err := cs.CallTool(t.Context(), &mcp.CallToolParams{
		Name: "greyscript_generate",
		Arguments: map[string]any{
			"script_type":  "port_scanner",
			"game_version": "0.9.0",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %v", res.Content)
	}
	text := textOf(t, res)
	if !strings.Contains(text, "0.9.0") {
		t.Fatalf("missing version in result: %s", text)
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(payload.Code, "get_router") {
		t.Fatalf("unexpected template:\n%s", payload.Code)
	}
}

func TestCallToolFailureIsError(t *testing.T) {
	search := fake.New(0)
	search.Err = errmodel.Policy(errmodel.CodeUnauthenticated, "GITHUB_TOKEN is not set", nil)
	cs := connect(t, newTestServer(t, search))

	res, err := cs.CallTool(t.Context(), &mcp.CallToolParams{
		Name:      "greyscript_search",
		Arguments: map[string]any{"query": "get_router"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected IsError result")
	}
	if text := textOf(t, res); !strings.Contains(text, "GITHUB_TOKEN") {
		t.Fatalf("message=%q", text)
	}
}

func TestCallUnknownTool(t *testing.T) {
	cs := connect(t, newTestServer(t, fake.New(0)))
	_, err := cs.CallTool(t.Context(), &mcp.CallToolParams{Name: "nope"})
	if err == nil {
		t.Fatal("expected protocol error for unknown tool")
	}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] has type %T", res.Content[0])
	}
	return tc.Text
}

func TestHTTPHandlerEndpoints(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, fake.New(0)).HTTPHandler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("healthz status=%d", res.StatusCode)
	}

	res2, err := http.Get(srv.URL + "/api/tools")
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Fatalf("tools status=%d", res2.StatusCode)
	}
	var listing struct {
		Tools []struct {
			Name   string `json:"name"`
			Params []struct {
				Name     string `json:"name"`
				Type     string `json:"type"`
				Required bool   `json:"required"`
			} `json:"params"`
		} `json:"tools"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	if len(listing.Tools) != 4 {
		t.Fatalf("tools=%d", len(listing.Tools))
	}
	if listing.Tools[0].Name != "greyscript_search" {
		t.Fatalf("order broken: %s", listing.Tools[0].Name)
	}

	res3, err := http.Post(srv.URL+"/api/tools", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = res3.Body.Close()
	if res3.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("post status=%d", res3.StatusCode)
	}
}
