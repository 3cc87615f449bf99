package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ripple",
		Short: "Reactive store server",
		Long: `Ripple is a reactive value-propagation engine.

Named stores hold immutable state snapshots; derived stores recompute
automatically when their dependencies change. The server exposes stores
over HTTP and streams changes over WebSocket:

  • GET  /stores/{name}          read a snapshot
  • GET  /stores/{name}/path/*   safe nested lookup
  • POST /stores/{name}          shallow merge-set
  • GET  /stores/{name}/watch    stream changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
