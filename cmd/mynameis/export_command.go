package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var subjectFlag string
	var outputFlag string
	var noPlaylist bool
	var noPhoto bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the recordings as tagged audio files with a playlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				if outputFlag != "" {
					a.Settings.ExportPath = outputFlag
				}
				if noPlaylist {
					a.Settings.CreatePlaylist = false
				}
				if noPhoto {
					a.Settings.SavePhotoInFolder = false
					a.Settings.SavePhotoInTags = false
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				verbose := ctx.verbose != nil && *ctx.verbose

				result, err := a.Export(cmd.Context(), subjectFlag, func(event export.ProgressEvent) {
					if line := renderProgressEvent(event, verbose, colorize); line != "" {
						fmt.Fprintln(out, line)
					}
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "\nWrote %d/%d clips to %s\n", result.Written, len(result.Collection.Clips), result.Collection.Path)
				if result.Failed > 0 {
					return fmt.Errorf("%d clips could not be exported", result.Failed)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "Child name (defaults to the current name)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().BoolVar(&noPlaylist, "no-playlist", false, "Do not write a playlist file")
	cmd.Flags().BoolVar(&noPhoto, "no-photo", false, "Do not write or embed the photo")
	return cmd
}
