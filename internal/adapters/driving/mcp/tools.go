package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FlattenInput is the input schema for the flatten_repo tool.
type FlattenInput struct {
	URL string `json:"url" jsonschema:"the repository URL to flatten"`
}

// FlattenOutput is the output schema for the flatten_repo tool.
type FlattenOutput struct {
	Document string `json:"document"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "flatten_repo",
		Description: "Flatten a GitHub repository's tree and text file contents into one document",
	}, s.handleFlatten)
}

// handleFlatten handles the flatten_repo tool invocation.
func (s *Server) handleFlatten(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FlattenInput,
) (*mcp.CallToolResult, FlattenOutput, error) {
	doc, err := s.ports.Builder.Build(ctx, input.URL)
	if err != nil {
		return nil, FlattenOutput{}, err
	}
	return nil, FlattenOutput{Document: doc}, nil
}
