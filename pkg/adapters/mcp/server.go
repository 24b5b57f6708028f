// Package mcp exposes the fleet core as an MCP server, so agent tooling can
// drive robots through the same operations the REST adapter offers.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/robofleet/robofleet"
	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/ports"
)

// Server wraps the fleet and exposes it as an MCP server.
type Server struct {
	fleet     ports.Fleet
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(fleet ports.Fleet, logger *slog.Logger) *Server {
	s := &Server{
		fleet:     fleet,
		logger:    logger,
		mcpServer: server.NewMCPServer("robofleet-mcp", strings.TrimSpace(robofleet.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop MCP server gracefully: %w", err)
		}
		return nil
	}
}

// robotList wraps snapshots for a structured tool result.
type robotList struct {
	Robots []domain.Snapshot `json:"robots"`
}

func (s *Server) registerTools() {
	statusTool := mcp.NewTool("get_status",
		mcp.WithDescription("Get a robot's current position, energy, inventory and state."),
		mcp.WithString("robot_id", mcp.Required(), mcp.Description("The robot's identifier")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(statusTool, mcp.NewStructuredToolHandler(s.handleGetStatus))

	listTool := mcp.NewTool("list_robots",
		mcp.WithDescription("List every robot in the fleet."),
		mcp.WithOutputSchema[robotList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListRobots))

	provisionTool := mcp.NewTool("provision_robot",
		mcp.WithDescription("Create a robot. Omit robot_id to generate one."),
		mcp.WithString("robot_id", mcp.Description("Desired identifier (optional)")),
		mcp.WithNumber("x", mcp.Description("Initial x coordinate (default 0)")),
		mcp.WithNumber("y", mcp.Description("Initial y coordinate (default 0)")),
		mcp.WithNumber("energy", mcp.Description("Initial energy 0-100 (default 100)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(provisionTool, mcp.NewStructuredToolHandler(s.handleProvision))

	moveTool := mcp.NewTool("move_robot",
		mcp.WithDescription("Move a robot one step up, down, left or right. Costs energy."),
		mcp.WithString("robot_id", mcp.Required(), mcp.Description("The robot's identifier")),
		mcp.WithString("direction", mcp.Required(), mcp.Description("One of: up, down, left, right")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(moveTool, mcp.NewStructuredToolHandler(s.handleMove))

	patchTool := mcp.NewTool("patch_state",
		mcp.WithDescription("Patch a robot's energy and/or position. Only supplied fields change."),
		mcp.WithString("robot_id", mcp.Required(), mcp.Description("The robot's identifier")),
		mcp.WithNumber("energy", mcp.Description("New energy, clamped to 0-100 (optional)")),
		mcp.WithNumber("x", mcp.Description("New x coordinate (optional, requires y)")),
		mcp.WithNumber("y", mcp.Description("New y coordinate (optional, requires x)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(patchTool, mcp.NewStructuredToolHandler(s.handlePatch))

	pickupTool := mcp.NewTool("pickup_item",
		mcp.WithDescription("Pick up an item. Fails if any robot already holds it."),
		mcp.WithString("robot_id", mcp.Required(), mcp.Description("The robot's identifier")),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("The item to claim")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(pickupTool, mcp.NewStructuredToolHandler(s.handlePickup))

	putdownTool := mcp.NewTool("putdown_item",
		mcp.WithDescription("Put down a held item, releasing it for any robot."),
		mcp.WithString("robot_id", mcp.Required(), mcp.Description("The robot's identifier")),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("The item to release")),
		mcp.WithOutputSchema[domain.Snapshot](),
	)
	s.mcpServer.AddTool(putdownTool, mcp.NewStructuredToolHandler(s.handlePutdown))

	attackTool := mcp.NewTool("attack",
		mcp.WithDescription("Resolve an attack between two distinct robots."),
		mcp.WithString("attacker_id", mcp.Required(), mcp.Description("The attacking robot")),
		mcp.WithString("target_id", mcp.Required(), mcp.Description("The target robot")),
		mcp.WithOutputSchema[domain.AttackResult](),
	)
	s.mcpServer.AddTool(attackTool, mcp.NewStructuredToolHandler(s.handleAttack))

	actionsTool := mcp.NewTool("list_actions",
		mcp.WithDescription("Page through a robot's action history in ascending order."),
		mcp.WithString("robot_id", mcp.Required(), mcp.Description("The robot's identifier")),
		mcp.WithNumber("page", mcp.Description("1-based page number (default 1)")),
		mcp.WithNumber("size", mcp.Description("Page size (default 5)")),
		mcp.WithOutputSchema[domain.ActionPage](),
	)
	s.mcpServer.AddTool(actionsTool, mcp.NewStructuredToolHandler(s.handleListActions))
}

// Handler methods for structured tools

func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	var in statusArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Snapshot{}, err
	}
	return s.fleet.Get(ctx, in.RobotID)
}

func (s *Server) handleListRobots(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (robotList, error) {
	snaps, err := s.fleet.List(ctx)
	if err != nil {
		return robotList{}, err
	}
	return robotList{Robots: snaps}, nil
}

func (s *Server) handleProvision(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	var in provisionArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Snapshot{}, err
	}
	return s.fleet.Provision(ctx, in.request())
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	var in moveArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Snapshot{}, err
	}
	return s.fleet.Move(ctx, in.RobotID, domain.Direction(in.Direction))
}

func (s *Server) handlePatch(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	var in patchArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Snapshot{}, err
	}
	patch, err := in.patch()
	if err != nil {
		return domain.Snapshot{}, err
	}
	return s.fleet.PatchState(ctx, in.RobotID, patch)
}

func (s *Server) handlePickup(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	var in itemArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Snapshot{}, err
	}
	return s.fleet.Pickup(ctx, in.RobotID, in.ItemID)
}

func (s *Server) handlePutdown(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	var in itemArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.Snapshot{}, err
	}
	return s.fleet.Putdown(ctx, in.RobotID, in.ItemID)
}

func (s *Server) handleAttack(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.AttackResult, error) {
	var in attackArgs
	if err := decodeArgs(args, &in); err != nil {
		return domain.AttackResult{}, err
	}
	return s.fleet.Attack(ctx, in.AttackerID, in.TargetID)
}

func (s *Server) handleListActions(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.ActionPage, error) {
	in := actionsArgs{Page: 1, Size: 5}
	if err := decodeArgs(args, &in); err != nil {
		return domain.ActionPage{}, err
	}
	return s.fleet.ListActions(ctx, in.RobotID, in.Page, in.Size)
}
