package mcp

import "github.com/mark3labs/mcp-go/mcp"

func convertHTMLTool() mcp.Tool {
	return mcp.NewTool("convert_html",
		mcp.WithDescription("Convert an HTML document to JSX component and page sources. Repeated structures become parameterized components; components identical to ones seen in earlier calls are reused, not re-emitted."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("The HTML document source"),
		),
		mcp.WithString("name",
			mcp.Description("Document name used to derive the page component name (default: document)"),
		),
	)
}

func convertFileTool() mcp.Tool {
	return mcp.NewTool("convert_file",
		mcp.WithDescription("Convert an HTML file on disk and write the generated component, page and asset files into the configured output directory."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .html file"),
		),
	)
}

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List every component extracted so far: name, prop names, output path and content fingerprint."),
	)
}
