package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"slate/internal/api"
	"slate/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "process <take-id>",
		Short: "Run the analysis pipeline for a take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTakeID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if _, err := client.Process(cmd.Context(), id); err != nil {
				return err
			}
			if !wait {
				fmt.Fprintf(cmd.OutOrStdout(), "Processing take %d started. Poll with `slate show %d`.\n", id, id)
				return nil
			}
			return followRun(cmd.Context(), cmd.OutOrStdout(), client, id)
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the run finishes, streaming the progress log")
	return cmd
}

// followRun polls the take status and prints progress log lines as they
// appear until the run leaves the processing state.
func followRun(ctx context.Context, out io.Writer, client *api.Client, id int64) error {
	printed := 0
	for {
		status, err := client.TakeStatus(ctx, id)
		if err != nil {
			return err
		}
		for ; printed < len(status.Progress.Logs); printed++ {
			fmt.Fprintln(out, status.Progress.Logs[printed])
		}
		switch status.Progress.Status {
		case pipeline.StatusCompleted:
			fmt.Fprintf(out, "Take %d processed (100%%).\n", id)
			return nil
		case pipeline.StatusError:
			return fmt.Errorf("processing take %d failed; see log above", id)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
}
