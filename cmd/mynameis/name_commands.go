package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
)

func newNameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "name [NAME...]",
		Short: "Show or set the child's name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					name := a.Session.ChildName(cmd.Context())
					if name == "" {
						fmt.Fprintln(out, "No name set")
						return nil
					}
					fmt.Fprintln(out, name)
					return nil
				}

				if err := a.Session.SetChildName(cmd.Context(), strings.Join(args, " ")); err != nil {
					return err
				}
				fmt.Fprintf(out, "Recording for %s\n", a.Session.ChildName(cmd.Context()))
				return nil
			})
		},
	}
}

func newNamesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List recently used names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				names := a.Session.RecentNames(cmd.Context())
				if len(names) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No names yet")
					return nil
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
}
