package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/mynameis/internal/audio"
	"github.com/handiism/mynameis/internal/config"
	ioutils "github.com/handiism/mynameis/internal/io"
	"github.com/handiism/mynameis/internal/model"
	"github.com/handiism/mynameis/internal/recording"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNothingToExport is returned when the subject has no recordings.
var ErrNothingToExport = errors.New("nothing to export")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an export progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Lister returns the stored recordings of a subject in deck order.
type Lister interface {
	ListForSubject(ctx context.Context, subject string) []recording.Entry
}

// Result summarizes one export.
type Result struct {
	Collection *model.Collection
	Written    int
	Failed     int
}

// Manager writes a subject's recordings to disk as a tagged collection.
type Manager struct {
	settings     *config.Settings
	store        Lister
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	logger       *zap.Logger

	totalFiles   int32
	writtenFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new export Manager.
func NewManager(settings *config.Settings, store Lister, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	tagCfg := audio.DefaultTagConfig()
	tagCfg.ModifyTags = settings.ModifyTags

	return &Manager{
		settings:     settings,
		store:        store,
		tagger:       audio.NewTagger(tagCfg),
		playlist:     audio.NewPlaylistCreator(settings.PlaylistFormatValue(), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		logger:       logger.Named("export"),
		onProgress:   onProgress,
	}
}

// GetProgress returns the number of files written and expected so far.
func (m *Manager) GetProgress() (written, total int32) {
	return atomic.LoadInt32(&m.writtenFiles), atomic.LoadInt32(&m.totalFiles)
}

// Export writes every recording of subject under the export directory,
// with the photo (JPEG bytes, may be nil) as cover.
//
// A clip that fails to write is reported and skipped; the rest of the
// collection is still written.
func (m *Manager) Export(ctx context.Context, subject string, photo []byte) (*Result, error) {
	entries := m.store.ListForSubject(ctx, subject)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no recordings for %q", ErrNothingToExport, subject)
	}

	c := model.NewCollection(m.settings.ExportPath, subject, m.settings.PlaylistFormatValue())
	for _, e := range entries {
		c.Add(e.Key, e.Recording)
	}

	atomic.StoreInt32(&m.writtenFiles, 0)
	atomic.StoreInt32(&m.totalFiles, int32(len(c.Clips)))

	if err := ioutils.EnsureDir(c.Path); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
		return nil, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Exporting %d clips of %s to %s", len(c.Clips), subject, c.Path), Level: LevelInfo})

	tagPhoto := m.preparePhoto(ctx, c, photo)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.settings.MaxConcurrentExports, 1))

	var written int32
	for _, clip := range c.Clips {
		g.Go(func() error {
			if err := m.exportClip(gctx, clip, c, tagPhoto); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error exporting %s: %v", clip.Title, err), Level: LevelError})
				m.logger.Warn("clip export failed",
					zap.String("key", clip.Key.String()),
					zap.String("path", clip.Path),
					zap.Error(err))
				return nil // Continue with other clips
			}
			atomic.AddInt32(&written, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if m.settings.CreatePlaylist {
		content := m.playlist.CreatePlaylist(c)
		if err := ioutils.WriteFile(ctx, c.PlaylistPath, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(c.PlaylistPath)), Level: LevelSuccess})
		}
	}

	result := &Result{Collection: c, Written: int(written), Failed: len(c.Clips) - int(written)}
	if result.Failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully exported %s", subject), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, %d clips failed", subject, result.Failed), Level: LevelWarning})
	}
	return result, nil
}

// preparePhoto saves the cover file when requested and returns the bytes
// to embed in tags, or nil.
func (m *Manager) preparePhoto(ctx context.Context, c *model.Collection, photo []byte) []byte {
	if len(photo) == 0 {
		return nil
	}

	if m.settings.SavePhotoInFolder {
		if err := ioutils.WriteFile(ctx, c.CoverPath, photo); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving photo: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: "Saved cover photo", Level: LevelVerbose})
		}
	}

	if !m.settings.SavePhotoInTags {
		return nil
	}
	if m.settings.PhotoMaxSize > 0 {
		resized, err := m.imageService.PreparePhoto(ctx, photo, m.settings.PhotoMaxSize)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Photo not embedded: %v", err), Level: LevelWarning})
			return nil
		}
		return resized
	}
	return photo
}

func (m *Manager) exportClip(ctx context.Context, clip *model.Clip, c *model.Collection, photo []byte) error {
	if err := ioutils.WriteFile(ctx, clip.Path, clip.Recording.Payload()); err != nil {
		return err
	}
	atomic.AddInt32(&m.writtenFiles, 1)

	if isMP3(clip.Recording.MimeType) && (m.settings.ModifyTags || photo != nil) {
		if err := m.tagger.SaveTags(clip, c, photo); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", clip.Title, err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Exported: %s", filepath.Base(clip.Path)), Level: LevelVerbose})
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func isMP3(mimeType string) bool {
	return model.MimeExtension(mimeType) == ".mp3"
}
