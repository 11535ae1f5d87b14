// ABOUTME: MCP resources for exposing recipes as readable documents.
// ABOUTME: Allows AI agents to read a recipe as markdown via URI scheme.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/recipebook/internal/backup"
	"github.com/harper/recipebook/internal/state"
)

const recipeURIPrefix = "recipebook://recipe/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: recipeURIPrefix + "{id}",
			Name:        "Recipe",
			Description: "Access individual recipes by numeric ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Parse URI: recipebook://recipe/{id}
	var id int
	if _, err := fmt.Sscanf(req.Params.URI, recipeURIPrefix+"%d", &id); err != nil {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	r, ok := state.FindRecipe(s.store.State().Recipes, id)
	if !ok {
		return nil, fmt.Errorf("recipe %d not found", id)
	}

	content, err := backup.RecipeMarkdown(r)
	if err != nil {
		return nil, fmt.Errorf("render recipe %d: %w", id, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     string(content),
			},
		},
	}, nil
}
