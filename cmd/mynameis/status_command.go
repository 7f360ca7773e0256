package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/model"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var subjectFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which stages are recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				c := cmd.Context()
				subject, err := subjectFor(c, a, subjectFlag)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				lines := renderSectionHeader("My name is "+subject, colorize)

				for _, stage := range model.FixedStages() {
					kind, msg := statusWarn, "not recorded"
					if rec, ok := a.Store.GetKey(c, model.StageKey(subject, stage)); ok {
						kind, msg = statusOK, rec.Timestamp.Local().Format("2006-01-02 15:04")
					}
					lines = append(lines, renderStatusLine(stage.Label(), kind, msg, colorize))
				}

				letters := a.Store.LetterProgress(c, subject)
				letterKind := statusWarn
				if letters.Total > 0 && letters.Recorded == letters.Total {
					letterKind = statusOK
				}
				lines = append(lines, renderStatusLine("Letters", letterKind,
					fmt.Sprintf("%d of %d", letters.Recorded, letters.Total), colorize))

				status := a.Store.CompletionStatus(c, subject)
				completeKind := statusInfo
				if status.Complete() {
					completeKind = statusOK
				}
				lines = append(lines, "", renderStatusLine("Complete", completeKind,
					fmt.Sprintf("%d%% (%d/%d stages)", status.Percentage, status.Recorded, status.Total), colorize))

				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "Child name (defaults to the current name)")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var subjectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored recordings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				subject, err := subjectFor(cmd.Context(), a, subjectFlag)
				if err != nil {
					return err
				}

				entries := a.Store.ListForSubject(cmd.Context(), subject)
				if len(entries) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No recordings for %s\n", subject)
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.Key.Title(),
						e.Key.String(),
						strconv.Itoa(e.Recording.Size()),
						e.Recording.Timestamp.Local().Format("2006-01-02 15:04"),
						e.Recording.TakeID,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Clip", "Key", "Bytes", "Recorded", "Take"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "Child name (defaults to the current name)")
	return cmd
}
