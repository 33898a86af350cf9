// Package cmd wires the CLI entrypoints.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carioca-backend",
	Short: "Authoritative server for online Carioca",
	Long: `carioca-backend runs the authoritative game server for Carioca, a
nine-round Rummy variant. Clients connect over websocket, get matched into
rooms of 2-4 seats (bots fill empty seats), and play rounds whose legality
is decided entirely server-side.`,
}

// Execute runs the CLI. It exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
