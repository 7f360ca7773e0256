package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/mynameis/internal/kv"
	"github.com/handiism/mynameis/internal/model"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if settings.MimeType != "audio/mpeg" {
		t.Errorf("MimeType = %q, want audio/mpeg", settings.MimeType)
	}
	if settings.StorageBackend != "file" {
		t.Errorf("StorageBackend = %q, want file", settings.StorageBackend)
	}
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings := DefaultSettings()
	settings.StorageBackend = "sqlite"
	settings.StoragePath = "/tmp/state.db"
	settings.PlaylistFormat = "pls"
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.StorageBackend != "sqlite" || loaded.StoragePath != "/tmp/state.db" {
		t.Errorf("storage = %q %q", loaded.StorageBackend, loaded.StoragePath)
	}
	if loaded.PlaylistFormatValue() != model.PlaylistFormatPLS {
		t.Errorf("PlaylistFormatValue = %v, want PLS", loaded.PlaylistFormatValue())
	}
}

func TestLoadTOMLKeepsDefaultsForUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := strings.Join([]string{
		`storage_backend = "redis"`,
		`redis_addr = "cache:6379"`,
		`max_recording_seconds = 12`,
		`capture_command = ["arecord", "-f", "cd", "-t", "wav", "-"]`,
		`mime_type = "audio/wav"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	opts := settings.ToStorageOptions()
	if opts.Backend != kv.BackendRedis || opts.RedisAddr != "cache:6379" {
		t.Errorf("storage options = %+v", opts)
	}
	if opts.RedisPrefix != "mynameis:" {
		t.Errorf("RedisPrefix = %q, want default", opts.RedisPrefix)
	}
	if got := settings.MaxRecordingDuration(); got != 12*time.Second {
		t.Errorf("MaxRecordingDuration = %v", got)
	}
	if settings.CaptureCommand[0] != "arecord" {
		t.Errorf("CaptureCommand = %v", settings.CaptureCommand)
	}
	if capOpts := settings.ToCaptureOptions(); capOpts.MimeType != "audio/wav" {
		t.Errorf("capture mime = %q", capOpts.MimeType)
	}
	if !settings.ModifyTags {
		t.Error("ModifyTags default lost")
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	settings := DefaultSettings()
	settings.LogLevel = "debug"
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "log_level = ") || strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Errorf("expected TOML output, got:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", loaded.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"memory without path", func(s *Settings) { s.StorageBackend = "memory"; s.StoragePath = "" }, false},
		{"file without path", func(s *Settings) { s.StoragePath = "" }, true},
		{"unknown backend", func(s *Settings) { s.StorageBackend = "floppy" }, true},
		{"redis without addr", func(s *Settings) { s.StorageBackend = "redis"; s.RedisAddr = "" }, true},
		{"negative duration", func(s *Settings) { s.MaxRecordingSeconds = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
