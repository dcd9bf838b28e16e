package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// componentSummary is the wire shape for one emitted component.
type componentSummary struct {
	Name      string   `json:"name"`
	PropNames []string `json:"prop_names,omitempty"`
	Origin    string   `json:"origin,omitempty"`
	Path      string   `json:"path,omitempty"`
	Source    string   `json:"source,omitempty"`
}

func (s *Server) handleConvertHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := req.GetString("name", "document")

	res, err := s.converter.ConvertDocument(name, strings.NewReader(source))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}

	components := make([]componentSummary, 0, len(res.Components))
	for _, c := range res.Components {
		components = append(components, componentSummary{
			Name:      c.Name,
			PropNames: c.PropNames,
			Origin:    c.Origin,
			Path:      c.Path,
			Source:    c.Source,
		})
	}

	payload := map[string]any{
		"page": map[string]any{
			"name":   res.Page.Name,
			"path":   res.Page.Path,
			"source": res.Page.Source,
		},
		"new_components": components,
	}
	return jsonResult(payload)
}

func (s *Server) handleConvertFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.converter.Invalidate(path)
	res, err := s.converter.ConvertFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}

	names := make([]string, 0, len(res.Components))
	for _, c := range res.Components {
		names = append(names, c.Name)
	}
	payload := map[string]any{
		"page":           res.Page.Name,
		"page_path":      res.Page.Path,
		"new_components": names,
	}
	return jsonResult(payload)
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := s.converter.Registry().Components()

	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"name":        e.Name,
			"prop_names":  e.PropNames,
			"path":        e.Path,
			"fingerprint": e.Fingerprint,
		})
	}
	return jsonResult(map[string]any{"components": out, "count": len(out)})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
