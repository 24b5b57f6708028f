package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robofleet/robofleet"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of robofleet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("robofleet version %s\n", strings.TrimSpace(robofleet.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
