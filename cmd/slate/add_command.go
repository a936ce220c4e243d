package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"slate/internal/api"
	"slate/internal/fileutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var importClip bool

	cmd := &cobra.Command{
		Use:   "add <file-path>",
		Short: "Register a clip as a new take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if importClip {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				imported, err := fileutil.ImportClip(path, cfg.Paths.MediaDir)
				if err != nil {
					return fmt.Errorf("import clip: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported clip into %s\n", imported)
				path = imported
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			take, err := client.CreateTake(cmd.Context(), api.CreateTakeRequest{
				FileName: filepath.Base(path),
				FilePath: path,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered take %d (%s)\n", take.ID, take.FileName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&importClip, "import", false, "Copy the clip into the media library before registering it")
	return cmd
}
