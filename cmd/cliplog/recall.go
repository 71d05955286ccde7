package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/service"
)

func newRecallCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "recall INDEX",
		Short: "Copy a history entry back to the clipboard",
		Long: `Copies entry INDEX (as shown by "cliplog list") back to the system
clipboard. The daemon writes the clipboard, so this works from any terminal
on the same session.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runRecall(cmd, v, args[0]) },
	}

	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runRecall(cmd *cobra.Command, v *viper.Viper, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("index %q is not a number", arg)
	}

	client, conn, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := requestContext(cmd.Context())
	defer cancel()
	resp, err := client.Recall(ctx, &api.RecallRequest{Index: index})
	if err != nil {
		err = service.FromStatus(err)
		switch {
		case errors.Is(err, history.ErrNotFound):
			return fmt.Errorf("no entry %d in the history", index)
		case errors.Is(err, clip.ErrWrite):
			return fmt.Errorf("daemon could not write the clipboard: %w", err)
		}
		return fmt.Errorf("recall: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "copied entry %d from %s\n", index, resp.Entry.Time())
	return nil
}
