package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "robofleet",
	Short: "Robofleet is an in-memory robot fleet state service",
	Long: `Robofleet models a population of stateful robots (position, energy,
inventory and an append-only action history) behind a REST and MCP
interface. State lives in process memory for the service's lifetime.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}
