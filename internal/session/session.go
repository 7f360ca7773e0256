package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/mynameis/internal/capture"
	ioutils "github.com/handiism/mynameis/internal/io"
	"github.com/handiism/mynameis/internal/kv"
	"github.com/handiism/mynameis/internal/model"
	"github.com/handiism/mynameis/internal/recording"
	"go.uber.org/zap"
)

// Persisted keys besides recording.RecordingsKey.
const (
	ChildNameKey   = "mynameis.childName"
	RecentNamesKey = "mynameis.recentNames"
	PreferencesKey = "mynameis.settings"
	ChildPhotoKey  = "mynameis.childPhoto"
)

// MaxRecentNames bounds the recent-names list.
const MaxRecentNames = 5

var (
	// ErrNoChildName is returned when an operation needs a child name and
	// none is set, or an empty name is given.
	ErrNoChildName = errors.New("no child name")

	// ErrResetNotConfirmed is returned by Reset without confirmation.
	ErrResetNotConfirmed = errors.New("reset not confirmed")

	// ErrNotRecorded is returned when playing a key that holds no clip.
	ErrNotRecorded = errors.New("nothing recorded")

	// ErrNoPhoto is returned by Photo when no photo was imported.
	ErrNoPhoto = errors.New("no photo")
)

// Capture is the part of capture.Recorder a Session drives.
type Capture interface {
	Start(ctx context.Context, key model.RecordingKey) error
	Stop() (model.Recording, bool)
	Pending() (model.RecordingKey, bool)
	Play(ctx context.Context, rec model.Recording) (<-chan error, error)
	StopPlayback()
	State() capture.State
}

// Options configures a Session.
type Options struct {
	// PhotoMaxSize bounds the stored photo, in pixels per side.
	PhotoMaxSize int
}

// Session is the single flow through the app: who the child is, what to
// record next, and the shared persisted state behind it.
type Session struct {
	adapter *kv.Adapter
	store   *recording.Store
	capture Capture
	images  *ioutils.ImageService
	opts    Options
	logger  *zap.Logger
}

// New creates a Session. capture may be nil for read-only use.
func New(adapter *kv.Adapter, store *recording.Store, c Capture, opts Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		adapter: adapter,
		store:   store,
		capture: c,
		images:  ioutils.NewImageService(),
		opts:    opts,
		logger:  logger.Named("session"),
	}
}

// Store returns the recording store.
func (s *Session) Store() *recording.Store {
	return s.store
}

// ChildName returns the current child's display name, or "".
func (s *Session) ChildName(ctx context.Context) string {
	return kv.Get(ctx, s.adapter, ChildNameKey, "")
}

// SetChildName stores name as the current child and moves it to the front
// of the recent names.
func (s *Session) SetChildName(ctx context.Context, name string) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ErrNoChildName
	}
	if err := model.StageKey(name, model.StageFullName).Validate(); err != nil {
		return err
	}

	kv.Set(ctx, s.adapter, ChildNameKey, name)
	kv.Set(ctx, s.adapter, RecentNamesKey, pushRecent(s.RecentNames(ctx), name))
	s.logger.Debug("child name set", zap.String("subject", model.NormalizeSubject(name)))
	return nil
}

// DisplayName returns how subject should be shown: the current or a recent
// child name when one normalizes to the same subject, otherwise subject with
// its whitespace collapsed.
func (s *Session) DisplayName(ctx context.Context, subject string) string {
	subject = strings.Join(strings.Fields(subject), " ")
	want := model.NormalizeSubject(subject)
	if want == "" {
		return subject
	}
	candidates := append([]string{s.ChildName(ctx)}, s.RecentNames(ctx)...)
	for _, name := range candidates {
		if name != "" && model.NormalizeSubject(name) == want {
			return name
		}
	}
	return subject
}

// RecentNames returns up to MaxRecentNames names, newest first.
func (s *Session) RecentNames(ctx context.Context) []string {
	return kv.Get(ctx, s.adapter, RecentNamesKey, []string{})
}

// pushRecent puts name first and drops case-insensitive duplicates.
func pushRecent(names []string, name string) []string {
	out := []string{name}
	for _, n := range names {
		if len(out) == MaxRecentNames {
			break
		}
		if model.NormalizeSubject(n) != model.NormalizeSubject(name) {
			out = append(out, n)
		}
	}
	return out
}

// Preferences returns the stored preferences or the defaults.
func (s *Session) Preferences(ctx context.Context) model.Preferences {
	return kv.Get(ctx, s.adapter, PreferencesKey, model.DefaultPreferences())
}

// SavePreferences stores p.
func (s *Session) SavePreferences(ctx context.Context, p model.Preferences) {
	kv.Set(ctx, s.adapter, PreferencesKey, p)
}

// ImportPhoto decodes an uploaded image, shrinks it and stores it as the
// child photo.
func (s *Session) ImportPhoto(ctx context.Context, data []byte) error {
	photo, err := s.images.PreparePhoto(ctx, data, s.opts.PhotoMaxSize)
	if err != nil {
		s.logger.Warn("photo import failed", zap.Error(err))
		return err
	}
	kv.Set(ctx, s.adapter, ChildPhotoKey, base64.StdEncoding.EncodeToString(photo))
	return nil
}

// Photo returns the stored child photo as JPEG bytes.
func (s *Session) Photo(ctx context.Context) ([]byte, error) {
	encoded := kv.Get(ctx, s.adapter, ChildPhotoKey, "")
	if encoded == "" {
		return nil, ErrNoPhoto
	}
	photo, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		s.logger.Warn("stored photo unreadable", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", kv.ErrStorageRead, err)
	}
	return photo, nil
}

// Prompts returns the fixed-stage prompts for the current child.
func (s *Session) Prompts(ctx context.Context) ([]Prompt, error) {
	name := s.ChildName(ctx)
	if name == "" {
		return nil, ErrNoChildName
	}
	return Prompts(name), nil
}

// Deck returns the flashcard deck of the current child.
func (s *Session) Deck(ctx context.Context) (*Deck, error) {
	name := s.ChildName(ctx)
	if name == "" {
		return nil, ErrNoChildName
	}
	return NewDeck(name), nil
}

// StageKey returns the key of stage for the current child.
func (s *Session) StageKey(ctx context.Context, stage model.Stage) (model.RecordingKey, error) {
	name := s.ChildName(ctx)
	if name == "" {
		return model.RecordingKey{}, ErrNoChildName
	}
	return model.StageKey(name, stage), nil
}

// BeginRecording starts capturing a clip for key.
func (s *Session) BeginRecording(ctx context.Context, key model.RecordingKey) error {
	if s.capture == nil {
		return fmt.Errorf("%w: no capture device", capture.ErrMicrophoneUnavailable)
	}
	return s.capture.Start(ctx, key)
}

// FinishRecording stops capture and saves the clip under the key recording
// began with. It returns false when nothing was being recorded or the
// take was empty.
func (s *Session) FinishRecording(ctx context.Context) (model.Recording, bool, error) {
	if s.capture == nil {
		return model.Recording{}, false, nil
	}
	key, pending := s.capture.Pending()
	rec, ok := s.capture.Stop()
	if !pending || !ok {
		return model.Recording{}, false, nil
	}
	if err := s.store.Save(ctx, key, rec); err != nil {
		return model.Recording{}, false, err
	}
	return rec, true, nil
}

// CancelRecording stops capture and discards the take.
func (s *Session) CancelRecording() {
	if s.capture == nil {
		return
	}
	if _, ok := s.capture.Stop(); ok {
		s.logger.Debug("take discarded")
	}
}

// Recording returns the stored clip under key.
func (s *Session) Recording(ctx context.Context, key model.RecordingKey) (model.Recording, bool) {
	return s.store.GetKey(ctx, key)
}

// Play starts playback of the clip stored under key.
func (s *Session) Play(ctx context.Context, key model.RecordingKey) (<-chan error, error) {
	rec, ok := s.store.GetKey(ctx, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRecorded, key)
	}
	if s.capture == nil {
		return nil, fmt.Errorf("%w: no audio output", capture.ErrPlaybackFailure)
	}
	return s.capture.Play(ctx, rec)
}

// Status returns the fixed-stage completion of the current child.
func (s *Session) Status(ctx context.Context) model.CompletionStatus {
	name := s.ChildName(ctx)
	if name == "" {
		return model.NewCompletionStatus(0, recording.FixedStageCount)
	}
	return s.store.CompletionStatus(ctx, name)
}

// LetterProgress returns the letter-card progress of the current child.
func (s *Session) LetterProgress(ctx context.Context) model.LetterProgress {
	return s.store.LetterProgress(ctx, s.ChildName(ctx))
}

// Reset wipes every persisted value: recordings, name, recent names,
// preferences and photo. It does nothing unless confirm is true.
func (s *Session) Reset(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrResetNotConfirmed
	}

	if s.capture != nil {
		s.capture.StopPlayback()
		s.capture.Stop()
	}
	s.store.Clear(ctx)
	s.adapter.Clear(ctx)

	s.logger.Info("all persisted state cleared")
	return nil
}
