package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ctx.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultSettings().Save(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := [][]string{
				{"config", ctx.configPath()},
				{"storage", fmt.Sprintf("%s %s", settings.StorageBackend, storageLocation(settings))},
				{"export path", settings.ExportPath},
				{"playlist", fmt.Sprintf("%s (%s)", yesNo(settings.CreatePlaylist), settings.PlaylistFormatValue().Extension())},
				{"tags", yesNo(settings.ModifyTags)},
				{"max recording", settings.MaxRecordingDuration().String()},
				{"log file", settings.LogFile},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List the keys held in storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				keys := a.Adapter.Keys(cmd.Context())
				if len(keys) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Storage is empty")
					return nil
				}
				for _, key := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			})
		},
	})

	return cmd
}

func storageLocation(s *config.Settings) string {
	if s.StorageBackend == "redis" {
		return s.RedisAddr
	}
	return s.StoragePath
}
