package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	ioutils "github.com/handiism/mynameis/internal/io"
)

func newPhotoCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage the child's photo",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Store a PNG, JPEG or GIF photo of the child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read photo: %w", err)
			}
			return ctx.withApp(cmd, func(a *app.App) error {
				if err := a.Session.ImportPhoto(cmd.Context(), data); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Photo saved")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <file>",
		Short: "Write the stored photo as a JPEG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				photo, err := a.Session.Photo(cmd.Context())
				if err != nil {
					return err
				}
				if err := ioutils.WriteFile(cmd.Context(), args[0], photo); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}
