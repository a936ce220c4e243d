package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReprocessAllCommand(ctx *commandContext) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "reprocess-all",
		Short: "Re-run the analysis pipeline for every registered take",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			takes, err := client.ListTakes(cmd.Context())
			if err != nil {
				return err
			}
			if len(takes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No takes to reprocess.")
				return nil
			}

			out := cmd.OutOrStdout()
			failures := 0
			for _, take := range takes {
				fmt.Fprintf(out, "Reprocessing take %d (%s)...\n", take.ID, take.FileName)
				if _, err := client.Process(cmd.Context(), take.ID); err != nil {
					failures++
					fmt.Fprintf(out, "  failed to start: %v\n", err)
					continue
				}
				if wait {
					if err := followRun(cmd.Context(), out, client, take.ID); err != nil {
						failures++
						fmt.Fprintf(out, "  %v\n", err)
					}
				}
			}
			fmt.Fprintf(out, "Requested reprocessing for %d takes (%d failures).\n", len(takes), failures)
			if failures > 0 {
				return fmt.Errorf("%d of %d takes failed", failures, len(takes))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", true, "Process takes sequentially, waiting for each run")
	return cmd
}
