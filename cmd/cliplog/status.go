package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliplog/internal/api"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show daemon status",
		Long:    `Displays the running daemon's version, clipboard backend and history size.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runStatus(cmd, v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runStatus(cmd *cobra.Command, v *viper.Viper) error {
	client, conn, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := requestContext(cmd.Context())
	defer cancel()
	resp, err := client.Status(ctx, &api.StatusRequest{})
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	out := cmd.OutOrStdout()
	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printStatus(out, resp, socketPath(v))
	return nil
}

func printStatus(w io.Writer, resp *api.StatusResponse, socket string) {
	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Version:\t%s\n", resp.Version)
	fmt.Fprintf(tw, "Socket:\t%s\n", socket)
	fmt.Fprintf(tw, "Backend:\t%s\n", resp.Backend)
	fmt.Fprintf(tw, "Entries:\t%d / %d\n", resp.Entries, resp.Capacity)
	if !resp.StartedAt.IsZero() {
		fmt.Fprintf(tw, "Started:\t%s (%s)\n", resp.StartedAt.Local().Format(time.RFC3339), fmtAge(resp.StartedAt))
	}
	_ = tw.Flush()
}

func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(age.Hours()))
}
