package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/session"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every recording, the name, the photo and preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				if err := a.Session.Reset(cmd.Context(), yes); err != nil {
					if errors.Is(err, session.ErrResetNotConfirmed) {
						return fmt.Errorf("%w: pass --yes to erase everything", err)
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Everything was erased")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
