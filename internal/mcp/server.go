// ABOUTME: MCP server for recipebook integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for recipe and note management.

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/sync"
)

// Syncer uploads the full collection and single recipes to the remote
// repository. A nil Syncer keeps the server local-only.
type Syncer interface {
	Push(ctx context.Context) github.Outcome
	SaveRecipe(ctx context.Context, r models.Recipe) (sync.SaveResult, error)
}

type Server struct {
	server *mcp.Server
	store  *state.Store
	syncer Syncer
}

func NewServer(store *state.Store, syncer Syncer) *Server {
	s := &Server{store: store, syncer: syncer}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "recipebook",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
