package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/takes"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <take-id>",
		Short: "Show take detail, analysis reasoning, and run progress",
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
			take, err := client.GetTake(cmd.Context(), id)
			if err != nil {
				return err
			}
			status, err := client.TakeStatus(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"ID", strconv.FormatInt(take.ID, 10)},
				{"File", take.FileName},
				{"Path", take.FilePath},
				{"Duration", formatDurationCell(take)},
				{"Confidence", formatConfidenceCell(take)},
				{"Accept status", statusLabel(take.AcceptStatus)},
				{"Run status", statusLabel(string(status.Progress.Status))},
				{"Run progress", fmt.Sprintf("%d%%", status.Progress.Percent)},
			}
			if emotion, ok := take.AIMetadata[takes.NamespaceEmotion].(string); ok {
				rows = append(rows, []string{"Emotion", statusLabel(emotion)})
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))

			if len(take.AIReasoning) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Analysis reasoning:")
				namespaces := make([]string, 0, len(take.AIReasoning))
				for ns := range take.AIReasoning {
					namespaces = append(namespaces, ns)
				}
				sort.Strings(namespaces)
				for _, ns := range namespaces {
					if text, ok := take.AIReasoning[ns].(string); ok && text != "" {
						fmt.Fprintf(out, "  %-8s %s\n", ns+":", text)
					}
				}
			}

			if len(status.Progress.Logs) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Last run log:")
				fmt.Fprintln(out, "  "+strings.Join(status.Progress.Logs, "\n  "))
			}
			return nil
		},
	}
}
