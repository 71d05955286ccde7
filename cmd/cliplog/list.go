package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/poller"
)

const listPreviewLen = 60

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the clipboard history",
		Long: `Prints the history held by the running daemon, oldest first. The INDEX
column is what "cliplog recall" takes.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runList(cmd, v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, v *viper.Viper) error {
	client, conn, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := requestContext(cmd.Context())
	defer cancel()
	resp, err := client.List(ctx, &api.ListRequest{})
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	out := cmd.OutOrStdout()
	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printEntries(out, resp.Entries)
	return nil
}

func printEntries(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "History is empty.")
		return
	}
	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "INDEX\tCOPIED\tCONTENT\n")
	for i, e := range entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%q\n", i, e.Time(), poller.Preview(e.Content, listPreviewLen))
	}
	_ = tw.Flush()
}
