package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Running", boolLabel(status.Running)},
				{"PID", strconv.Itoa(status.PID)},
				{"Database", status.DBPath},
				{"Lock file", status.LockFilePath},
				{"Tracked runs", strconv.Itoa(status.TrackedRuns)},
				{"Takes", strconv.Itoa(status.TotalTakes)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
