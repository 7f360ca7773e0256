package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	var showPhonetics, narrateLetters, autoAdvance bool

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change flashcard preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				c := cmd.Context()
				prefs := a.Session.Preferences(c)

				flags := cmd.Flags()
				changed := false
				if flags.Changed("show-phonetics") {
					prefs.ShowPhonetics, changed = showPhonetics, true
				}
				if flags.Changed("narrate-letters") {
					prefs.NarrateLetters, changed = narrateLetters, true
				}
				if flags.Changed("auto-advance") {
					prefs.AutoAdvance, changed = autoAdvance, true
				}
				if changed {
					a.Session.SavePreferences(c, prefs)
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Preference", "Value"},
					[][]string{
						{"show-phonetics", yesNo(prefs.ShowPhonetics)},
						{"narrate-letters", yesNo(prefs.NarrateLetters)},
						{"auto-advance", yesNo(prefs.AutoAdvance)},
					},
					nil,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showPhonetics, "show-phonetics", false, "Show the name under each flashcard")
	cmd.Flags().BoolVar(&narrateLetters, "narrate-letters", false, "Play the letter sound when a card is shown")
	cmd.Flags().BoolVar(&autoAdvance, "auto-advance", false, "Move to the next card after playback")
	return cmd
}
