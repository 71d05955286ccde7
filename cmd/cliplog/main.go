// cliplog: clipboard history daemon.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cliplog",
		Short: "Clipboard history",
		Long: `cliplog watches the system clipboard and keeps the last 100 distinct text
snapshots in memory. Any entry can be copied back to the clipboard.

Run "cliplog run" to start the daemon (add --ui for the interactive list).
Use "cliplog ui", "cliplog list" and "cliplog recall" against a running daemon.

Config file search order (first found wins):
  /etc/cliplog/cliplog.toml
  $HOME/.config/cliplog/cliplog.toml
  path supplied via --config

All flags can be set via CLIPLOG_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newUICmd(),
		newListCmd(),
		newRecallCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cliplog %s\n", Version)
		},
	}
}
