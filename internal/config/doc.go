// Package config provides configuration management for mynameis.
//
// This package handles:
//   - Loading and saving settings from JSON or TOML files
//   - Default configuration values
//   - Conversion to kv.Options and capture.Options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// State in ~/.local/share/mynameis/state.json
//	// ffmpeg capture, ffplay playback, 30 second clips
//	// Exports to ~/Music/My Name Is with ID3 tags and an M3U playlist
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// A path ending in ".toml" is read and written as TOML:
//
//	storage_backend = "sqlite"
//	storage_path = "/home/me/.local/share/mynameis/state.db"
//	max_recording_seconds = 20
//
// # Configuration Options
//
// Settings includes options for:
//   - Storage backend (file, sqlite, redis, memory)
//   - Capture and playback programs
//   - Export location, concurrency and playlists
//   - ID3 tags and the child photo
//   - Log level and log file
package config
