package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/jsxify/pkg/converter"
	"github.com/gnana997/jsxify/pkg/util"
)

// --- helpers ---

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := converter.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	c := converter.New(cfg, util.NewLogger(util.DefaultLoggerConfig()))
	t.Cleanup(func() { c.Close() })
	return NewServer(c, nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "convert_html":
		handler = s.handleConvertHTML
	case "convert_file":
		handler = s.handleConvertFile
	case "list_components":
		handler = s.handleListComponents
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

const repeatedListDoc = `<html><body>
<ul>
  <li class="item"><a href="/a">Alpha</a><span>first</span></li>
  <li class="item"><a href="/b">Beta</a><span>second</span></li>
  <li class="item"><a href="/c">Gamma</a><span>third</span></li>
</ul>
</body></html>`

// --- convert_html ---

func TestHandleConvertHTML(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("convert_html", map[string]any{
		"source": repeatedListDoc,
		"name":   "landing",
	}))
	assert.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))

	page, ok := payload["page"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "LandingPage", page["name"])
	assert.Contains(t, page["source"], "export default LandingPage")

	comps, ok := payload["new_components"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, comps)
	first := comps[0].(map[string]any)
	assert.Equal(t, "Item", first["name"])
}

func TestHandleConvertHTML_ReusesAcrossCalls(t *testing.T) {
	s := testServer(t)

	result := callTool(t, s, makeRequest("convert_html", map[string]any{
		"source": repeatedListDoc, "name": "one",
	}))
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	require.NotEmpty(t, payload["new_components"])

	// The same markup in a second document emits no new definitions.
	result = callTool(t, s, makeRequest("convert_html", map[string]any{
		"source": repeatedListDoc, "name": "two",
	}))
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	comps, ok := payload["new_components"].([]any)
	require.True(t, ok)
	assert.Empty(t, comps)
}

func TestHandleConvertHTML_MissingSource(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("convert_html", nil))
	assert.True(t, result.IsError)
}

// --- convert_file ---

func TestHandleConvertFile_NotFound(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("convert_file", map[string]any{
		"path": "/nonexistent/page.html",
	}))
	assert.True(t, result.IsError)
}

// --- list_components ---

func TestHandleListComponents_Empty(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("list_components", nil))
	assert.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	assert.Equal(t, float64(0), payload["count"])
}

func TestHandleListComponents_AfterConversion(t *testing.T) {
	s := testServer(t)
	callTool(t, s, makeRequest("convert_html", map[string]any{
		"source": repeatedListDoc, "name": "doc",
	}))

	result := callTool(t, s, makeRequest("list_components", nil))
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))

	comps, ok := payload["components"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, comps)
	first := comps[0].(map[string]any)
	assert.Equal(t, "Item", first["name"])
	assert.NotEmpty(t, first["fingerprint"])
}
