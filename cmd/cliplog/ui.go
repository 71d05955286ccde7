package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliplog/internal/tui"
)

func newUICmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse the history of a running daemon",
		Long: `Opens the interactive history list against the running daemon. The list
refreshes every 5 seconds and on "r"; enter copies the selected entry back
to the clipboard.

Logs go to --log-file while the list is open.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runUI(cmd.Context(), v) },
	}

	addSocketFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runUI(ctx context.Context, v *viper.Viper) error {
	logCloser, err := setupLogging(v, true)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	client, conn, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, tui.Remote(client))
}
