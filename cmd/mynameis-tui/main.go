package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/handiism/mynameis/internal/app"
	"github.com/handiism/mynameis/internal/config"
	"github.com/handiism/mynameis/internal/logging"
	"github.com/handiism/mynameis/internal/tui"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "Path to config file (.json or .toml)")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to the file.
	logger, err := logging.New(logging.Options{Level: settings.LogLevel, File: settings.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.Open(context.Background(), settings, logger)
	runErr := tui.Run(a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
