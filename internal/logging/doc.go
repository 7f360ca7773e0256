// Package logging builds the zap logger shared by the mynameis binaries.
//
// Logs go to a size-rotated file (lumberjack) and, when requested, to
// stderr as well:
//
//	logger, err := logging.New(logging.Options{
//	    Level:   "info",
//	    File:    "/home/me/.local/state/mynameis/mynameis.log",
//	    Console: true,
//	})
//	defer logger.Sync()
//
// The TUI keeps Console off so log lines never tear through the screen.
package logging
