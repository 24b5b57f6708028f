package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robofleet/robofleet"
	"github.com/robofleet/robofleet/internal/config"
	"github.com/robofleet/robofleet/internal/logging"
	mcpAdapter "github.com/robofleet/robofleet/pkg/adapters/mcp"
	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/registry"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes the fleet as MCP tools over stdio, or SSE with --port.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		// stdio transport owns stdout, so logs go to stderr regardless.
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		reg := robofleet.New(
			registry.WithLogger(logger),
			registry.WithTuning(cfg.Tuning),
		)

		seed := make([]domain.ProvisionRequest, 0, len(cfg.Seed))
		for _, s := range cfg.Seed {
			pos := s.Position
			energy := s.Energy
			seed = append(seed, domain.ProvisionRequest{ID: s.ID, Position: &pos, Energy: &energy})
		}
		if err := robofleet.Seed(cmd.Context(), reg, seed); err != nil {
			fmt.Printf("Error seeding fleet: %v\n", err)
			os.Exit(1)
		}

		server := mcpAdapter.NewServer(reg, logger)

		if port > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.ServeSSE(ctx, port); err != nil {
				fmt.Printf("MCP server error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := server.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().IntP("port", "p", 0, "Serve over SSE on this port instead of stdio")
}
