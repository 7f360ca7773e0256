package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/config"
	"github.com/handiism/mynameis/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Settings
	configErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path
		}
	}
	return config.DefaultPath()
}

func (c *commandContext) ensureConfig() (*config.Settings, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(c.configPath())
	})
	return c.config, c.configErr
}

// withApp opens the app for one command and closes it afterwards.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(*app.App) error) error {
	settings, err := c.ensureConfig()
	if err != nil {
		return err
	}

	consoleLevel := "warn"
	if c.verbose != nil && *c.verbose {
		consoleLevel = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:        settings.LogLevel,
		File:         settings.LogFile,
		Console:      true,
		ConsoleLevel: consoleLevel,
	})
	if err != nil {
		return err
	}

	a := app.Open(cmd.Context(), settings, logger)
	runErr := fn(a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
