package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/electrabase/internal/inventory"
)

const (
	// ServerName is the MCP server name
	ServerName = "electrabase"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the inventory it exposes
type Server struct {
	mcp       *server.MCPServer
	inventory *inventory.Inventory
	threshold int
	sub       *inventory.Subscription
	log       *zap.SugaredLogger
}

// NewServer creates an MCP server over inv. threshold is the default for
// low-stock queries. The caller keeps ownership of inv.
func NewServer(inv *inventory.Inventory, threshold int) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcp:       mcpServer,
		inventory: inv,
		threshold: threshold,
		log:       zap.S().Named("mcp"),
	}

	s.sub = inv.Subscribe(func(ev inventory.Event) {
		if ev.Kind == inventory.ErrorOccurred {
			s.log.Warnw("inventory error", "message", ev.Message)
			return
		}
		s.log.Debugw("inventory changed", "event", ev.Kind.String())
	})

	s.registerTools()
	return s
}

// Serve runs the MCP protocol on stdio until ctx is cancelled or stdin closes
func (s *Server) Serve(ctx context.Context) error {
	defer s.sub.Cancel()
	s.log.Infow("serving MCP over stdio", "server", ServerName, "version", ServerVersion)
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Categories
	s.mcp.AddTool(listCategoriesTool(), s.handleListCategories)
	s.mcp.AddTool(addCategoryTool(), s.handleAddCategory)
	s.mcp.AddTool(updateCategoryTool(), s.handleUpdateCategory)
	s.mcp.AddTool(deleteCategoryTool(), s.handleDeleteCategory)
	s.mcp.AddTool(categoryUsageTool(), s.handleCategoryUsage)

	// Components
	s.mcp.AddTool(listComponentsTool(), s.handleListComponents)
	s.mcp.AddTool(getComponentTool(), s.handleGetComponent)
	s.mcp.AddTool(addComponentTool(), s.handleAddComponent)
	s.mcp.AddTool(updateComponentTool(), s.handleUpdateComponent)
	s.mcp.AddTool(deleteComponentTool(), s.handleDeleteComponent)

	// Queries
	s.mcp.AddTool(lowStockTool(), s.handleLowStock)
	s.mcp.AddTool(searchComponentsTool(), s.handleSearchComponents)
	s.mcp.AddTool(inventoryStatsTool(), s.handleInventoryStats)
}
