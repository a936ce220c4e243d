package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTakesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "takes",
		Short: "List registered takes",
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
				fmt.Fprintln(cmd.OutOrStdout(), "No takes registered.")
				return nil
			}

			rows := make([][]string, 0, len(takes))
			for _, take := range takes {
				rows = append(rows, []string{
					strconv.FormatInt(take.ID, 10),
					take.FileName,
					formatDurationCell(take),
					formatConfidenceCell(take),
					statusLabel(take.AcceptStatus),
				})
			}

			if !stdoutIsTerminal() {
				for _, row := range rows {
					fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
				}
				return nil
			}
			headers := []string{"ID", "File", "Duration", "Confidence", "Accept"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}
