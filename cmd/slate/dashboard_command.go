package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregated review statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := client.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			stats := resp.Stats

			rows := [][]string{
				{"Total footage", stats.TotalFootage},
				{"Total takes", strconv.Itoa(stats.TotalTakes)},
				{"Processing progress", fmt.Sprintf("%.1f%%", stats.ProcessingProgress)},
				{"AI confidence health", fmt.Sprintf("%.1f", stats.AIConfidenceHealth)},
				{"Approved", strconv.Itoa(stats.ApprovedCount)},
				{"Pending review", strconv.Itoa(stats.PendingReviewCount)},
				{"Focus issues", strconv.Itoa(stats.Issues.Focus)},
				{"Audio issues", strconv.Itoa(stats.Issues.Audio)},
				{"Continuity breaks", strconv.Itoa(stats.Issues.Continuity)},
				{"Narrative gaps", strconv.Itoa(stats.Issues.Narrative)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, nil))
			return nil
		},
	}
}
