package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/session"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var subjectFlag string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "record " + targetUsage,
		Short: "Record a clip",
		Long: "Record a clip for one stage (" + stageNames() + ").\n" +
			"Letter sounds take the letter number, counted from 1: `mynameis record letter 2`.\n" +
			"Recording stops on Enter, or after --duration.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				c := cmd.Context()
				subject, err := subjectFor(c, a, subjectFlag)
				if err != nil {
					return err
				}
				key, err := resolveTarget(subject, args)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if err := a.Session.BeginRecording(c, key); err != nil {
					return err
				}
				if duration > 0 {
					fmt.Fprintf(out, "● Recording %s for %s...\n", key.Title(), duration)
				} else {
					fmt.Fprintf(out, "● Recording %s, press Enter to stop...\n", key.Title())
				}

				if err := waitForStop(c, cmd, duration); err != nil {
					a.Session.CancelRecording()
					return err
				}

				rec, saved, err := a.Session.FinishRecording(context.WithoutCancel(c))
				if err != nil {
					return err
				}
				if !saved {
					return errors.New("nothing was recorded, check the microphone")
				}
				fmt.Fprintf(out, "✓ Saved %s (%d bytes)\n", key.Title(), rec.Size())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "Child name (defaults to the current name)")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "Stop after this long instead of waiting for Enter")
	return cmd
}

// waitForStop blocks until Enter, the duration elapses or ctx ends. Only
// the last returns an error.
func waitForStop(ctx context.Context, cmd *cobra.Command, duration time.Duration) error {
	stop := make(chan struct{})
	if duration > 0 {
		timer := time.AfterFunc(duration, func() { close(stop) })
		defer timer.Stop()
	} else {
		go func() {
			_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			close(stop)
		}()
	}

	select {
	case <-stop:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var subjectFlag string

	cmd := &cobra.Command{
		Use:   "play " + targetUsage,
		Short: "Play a recorded clip",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				c := cmd.Context()
				subject, err := subjectFor(c, a, subjectFlag)
				if err != nil {
					return err
				}
				key, err := resolveTarget(subject, args)
				if err != nil {
					return err
				}

				done, err := a.Session.Play(c, key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "♪ %s\n", key.Title())

				select {
				case err := <-done:
					return err
				case <-c.Done():
					a.Recorder.StopPlayback()
					<-done
					return c.Err()
				}
			})
		},
	}

	cmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "Child name (defaults to the current name)")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var subjectFlag string

	cmd := &cobra.Command{
		Use:   "delete " + targetUsage,
		Short: "Delete a recorded clip",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				c := cmd.Context()
				subject, err := subjectFor(c, a, subjectFlag)
				if err != nil {
					return err
				}
				key, err := resolveTarget(subject, args)
				if err != nil {
					return err
				}

				if !a.Store.Delete(c, key) {
					return fmt.Errorf("%w: %s", session.ErrNotRecorded, key)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", key.Title())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&subjectFlag, "subject", "s", "", "Child name (defaults to the current name)")
	return cmd
}
