package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/handiism/mynameis/internal/capture"
	"github.com/handiism/mynameis/internal/config"
	"github.com/handiism/mynameis/internal/export"
	"github.com/handiism/mynameis/internal/kv"
	"github.com/handiism/mynameis/internal/recording"
	"github.com/handiism/mynameis/internal/session"
	"go.uber.org/zap"
)

// App holds the long-lived components of one run.
type App struct {
	Settings *config.Settings
	Logger   *zap.Logger
	Adapter  *kv.Adapter
	Store    *recording.Store
	Recorder *capture.Recorder
	Session  *session.Session
}

// Open builds an App from settings. Storage that cannot be opened degrades
// to memory for the run; nothing else here can fail.
func Open(ctx context.Context, settings *config.Settings, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings == nil {
		settings = config.DefaultSettings()
	}

	adapter := kv.OpenAdapter(ctx, settings.ToStorageOptions(), logger)
	store := recording.NewStore(adapter, logger)
	recorder := capture.NewRecorder(
		capture.NewCommandSource(settings.CaptureCommand),
		capture.NewCommandPlayer(settings.PlaybackCommand),
		settings.ToCaptureOptions(),
		logger,
	)
	sess := session.New(adapter, store, recorder, session.Options{PhotoMaxSize: settings.PhotoMaxSize}, logger)

	logger.Debug("app opened",
		zap.String("backend", settings.StorageBackend),
		zap.String("export_path", settings.ExportPath))

	return &App{
		Settings: settings,
		Logger:   logger,
		Adapter:  adapter,
		Store:    store,
		Recorder: recorder,
		Session:  sess,
	}
}

// Exporter returns an export manager reporting to onProgress, which may be nil.
func (a *App) Exporter(onProgress func(export.ProgressEvent)) *export.Manager {
	return export.NewManager(a.Settings, a.Store, a.Logger, onProgress)
}

// Export writes the clips of subject, or of the current child when subject
// is empty, with the stored photo as cover. A subject matching a known child
// is exported under that child's stored spelling.
func (a *App) Export(ctx context.Context, subject string, onProgress func(export.ProgressEvent)) (*export.Result, error) {
	if subject == "" {
		subject = a.Session.ChildName(ctx)
	} else {
		subject = a.Session.DisplayName(ctx, subject)
	}
	if subject == "" {
		return nil, session.ErrNoChildName
	}

	photo, err := a.Session.Photo(ctx)
	if err != nil && !errors.Is(err, session.ErrNoPhoto) {
		a.Logger.Warn("exporting without photo", zap.Error(err))
	}
	return a.Exporter(onProgress).Export(ctx, subject, photo)
}

// Close stops any capture or playback and closes storage.
func (a *App) Close() error {
	var errs []error
	if err := a.Recorder.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close recorder: %w", err))
	}
	if err := a.Adapter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
