package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/mynameis/internal/capture"
	"github.com/handiism/mynameis/internal/kv"
	"github.com/handiism/mynameis/internal/model"
	"github.com/pelletier/go-toml/v2"
)

// Settings holds all configuration options.
type Settings struct {
	// Storage settings
	StorageBackend string `json:"storage_backend" toml:"storage_backend"` // file, sqlite, redis, memory
	StoragePath    string `json:"storage_path" toml:"storage_path"`
	RedisAddr      string `json:"redis_addr" toml:"redis_addr"`
	RedisPassword  string `json:"redis_password" toml:"redis_password"`
	RedisDB        int    `json:"redis_db" toml:"redis_db"`
	RedisPrefix    string `json:"redis_prefix" toml:"redis_prefix"`

	// Capture settings
	CaptureCommand      []string `json:"capture_command" toml:"capture_command"`
	PlaybackCommand     []string `json:"playback_command" toml:"playback_command"`
	MimeType            string   `json:"mime_type" toml:"mime_type"`
	MaxRecordingSeconds int      `json:"max_recording_seconds" toml:"max_recording_seconds"`

	// Export settings
	ExportPath           string `json:"export_path" toml:"export_path"`
	MaxConcurrentExports int    `json:"max_concurrent_exports" toml:"max_concurrent_exports"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" toml:"create_playlist"`
	PlaylistFormat string `json:"playlist_format" toml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" toml:"m3u_extended"`

	// Tag and photo settings
	ModifyTags        bool `json:"modify_tags" toml:"modify_tags"`
	SavePhotoInTags   bool `json:"save_photo_in_tags" toml:"save_photo_in_tags"`
	SavePhotoInFolder bool `json:"save_photo_in_folder" toml:"save_photo_in_folder"`
	PhotoMaxSize      int  `json:"photo_max_size" toml:"photo_max_size"`

	// Logging settings
	LogLevel string `json:"log_level" toml:"log_level"`
	LogFile  string `json:"log_file" toml:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	dataDir := defaultDataDir(homeDir)

	return &Settings{
		StorageBackend: string(kv.BackendFile),
		StoragePath:    filepath.Join(dataDir, "state.json"),
		RedisAddr:      "localhost:6379",
		RedisPrefix:    "mynameis:",

		CaptureCommand:      capture.DefaultCaptureCommand(),
		PlaybackCommand:     capture.DefaultPlaybackCommand(),
		MimeType:            "audio/mpeg",
		MaxRecordingSeconds: 30,

		ExportPath:           filepath.Join(homeDir, "Music", "My Name Is"),
		MaxConcurrentExports: 4,

		CreatePlaylist: true,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags:        true,
		SavePhotoInTags:   true,
		SavePhotoInFolder: true,
		PhotoMaxSize:      600,

		LogLevel: "info",
		LogFile:  filepath.Join(dataDir, "mynameis.log"),
	}
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "mynameis", "settings.json")
}

// Load reads settings from a JSON file, or a TOML file when path ends in
// ".toml". A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isTOML(path) {
		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to path in the format implied by its extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise fail deep inside a component.
func (s *Settings) Validate() error {
	var errs []error
	switch kv.Backend(strings.ToLower(s.StorageBackend)) {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory, "":
		if s.StoragePath == "" && !strings.EqualFold(s.StorageBackend, string(kv.BackendMemory)) {
			errs = append(errs, errors.New("storage_path must be set"))
		}
	case kv.BackendRedis:
		if s.RedisAddr == "" {
			errs = append(errs, errors.New("redis_addr must be set for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage_backend: unsupported value %q", s.StorageBackend))
	}
	if s.MaxRecordingSeconds < 0 {
		errs = append(errs, errors.New("max_recording_seconds must not be negative"))
	}
	if s.MaxConcurrentExports < 0 {
		errs = append(errs, errors.New("max_concurrent_exports must not be negative"))
	}
	if s.PhotoMaxSize < 0 {
		errs = append(errs, errors.New("photo_max_size must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// ToStorageOptions converts settings to kv.Options.
func (s *Settings) ToStorageOptions() kv.Options {
	return kv.Options{
		Backend:       kv.Backend(strings.ToLower(s.StorageBackend)),
		Path:          s.StoragePath,
		RedisAddr:     s.RedisAddr,
		RedisPassword: s.RedisPassword,
		RedisDB:       s.RedisDB,
		RedisPrefix:   s.RedisPrefix,
	}
}

// ToCaptureOptions converts settings to capture.Options.
func (s *Settings) ToCaptureOptions() capture.Options {
	return capture.Options{
		MimeType:    s.MimeType,
		MaxDuration: s.MaxRecordingDuration(),
	}
}

// MaxRecordingDuration returns the capture limit, zero for none.
func (s *Settings) MaxRecordingDuration() time.Duration {
	return time.Duration(s.MaxRecordingSeconds) * time.Second
}

// PlaylistFormatValue parses PlaylistFormat, falling back to M3U.
func (s *Settings) PlaylistFormatValue() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaultDataDir(homeDir string) string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "mynameis")
	}
	return filepath.Join(homeDir, ".local", "share", "mynameis")
}
