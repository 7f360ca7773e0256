package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/handiism/mynameis/internal/model"
	"go.uber.org/zap"
)

// Options configures a Recorder.
type Options struct {
	// MimeType is the encoding produced by the Source. It is stamped on
	// every Recording.
	MimeType string

	// MaxDuration closes the device stream once elapsed. Zero means no limit.
	MaxDuration time.Duration

	// OnPlaybackEnd, when set, is called after every playback with its
	// result. A playback interrupted by StopPlayback ends with a nil error.
	OnPlaybackEnd func(rec model.Recording, err error)

	// Now overrides the clock used for Recording timestamps.
	Now func() time.Time
}

// take is one capture in progress.
type take struct {
	key    model.RecordingKey
	stream io.ReadCloser
	buf    bytes.Buffer
	done   chan struct{}
	timer  *time.Timer

	closeOnce sync.Once
	closeErr  error
	readErr   error
}

// halt closes the device stream exactly once.
func (t *take) halt() {
	t.closeOnce.Do(func() {
		t.closeErr = t.stream.Close()
	})
}

// Recorder captures clips from a Source and plays them on a Player.
// It is safe for concurrent use.
type Recorder struct {
	source Source
	player Player
	opts   Options
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	current    *take
	playCancel context.CancelFunc
	playSeq    uint64
}

// NewRecorder creates an idle Recorder. Either source or player may be nil,
// in which case Start or Play fail with their sentinel errors.
func NewRecorder(source Source, player Player, opts Options, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MimeType == "" {
		opts.MimeType = "audio/mpeg"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Recorder{
		source: source,
		player: player,
		opts:   opts,
		logger: logger.Named("capture"),
	}
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending returns the key being recorded, if any.
func (r *Recorder) Pending() (model.RecordingKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return model.RecordingKey{}, false
	}
	return r.current.key, true
}

// MimeType returns the encoding of recorded clips.
func (r *Recorder) MimeType() string {
	return r.opts.MimeType
}

// Start opens the microphone and begins buffering audio for key.
//
// A Start while already recording is ignored. When the device cannot be
// opened the error wraps ErrMicrophoneUnavailable and the Recorder stays
// idle, ready for another attempt.
func (r *Recorder) Start(ctx context.Context, key model.RecordingKey) error {
	if err := key.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		r.logger.Debug("start ignored, already recording", zap.String("key", r.current.key.String()))
		return nil
	}
	r.stopPlaybackLocked()

	if r.source == nil {
		r.logger.Warn("no capture source configured", zap.String("key", key.String()))
		return fmt.Errorf("%w: no capture source", ErrMicrophoneUnavailable)
	}

	stream, err := r.source.Open(ctx)
	if err != nil {
		r.logger.Warn("microphone unavailable",
			zap.String("key", key.String()),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrMicrophoneUnavailable, err)
	}

	t := &take{key: key, stream: stream, done: make(chan struct{})}
	go r.pump(t)
	if r.opts.MaxDuration > 0 {
		t.timer = time.AfterFunc(r.opts.MaxDuration, func() {
			r.logger.Info("recording limit reached, microphone released",
				zap.String("key", key.String()),
				zap.Duration("limit", r.opts.MaxDuration))
			t.halt()
		})
	}

	r.current = t
	r.state = StateRecording
	r.logger.Debug("recording started",
		zap.String("key", key.String()),
		zap.String("stage", string(key.Stage)))
	return nil
}

// Stop releases the microphone and returns the captured clip.
//
// Stop while idle returns false and does nothing. A take that produced no
// audio also returns false.
func (r *Recorder) Stop() (model.Recording, bool) {
	r.mu.Lock()
	t := r.current
	if r.state != StateRecording || t == nil {
		r.mu.Unlock()
		return model.Recording{}, false
	}
	r.current = nil
	r.state = StateIdle
	r.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.halt()
	<-t.done

	if t.closeErr != nil {
		r.logger.Warn("capture device reported an error on release",
			zap.String("key", t.key.String()),
			zap.Error(t.closeErr))
	}
	if t.readErr != nil {
		r.logger.Warn("capture stream ended with error, keeping buffered audio",
			zap.String("key", t.key.String()),
			zap.Error(t.readErr))
	}
	if t.buf.Len() == 0 {
		r.logger.Warn("capture produced no audio", zap.String("key", t.key.String()))
		return model.Recording{}, false
	}

	rec := model.NewRecording(t.key, t.buf.Bytes(), r.opts.MimeType, r.opts.Now())
	r.logger.Debug("recording stopped",
		zap.String("key", t.key.String()),
		zap.Int("bytes", rec.Size()))
	return rec, true
}

// Play starts playing rec and returns at once. The returned channel
// receives the playback result and is then closed.
//
// Any playback already running is stopped first. Play while recording
// returns ErrBusy.
func (r *Recorder) Play(ctx context.Context, rec model.Recording) (<-chan error, error) {
	if rec.IsZero() {
		return nil, fmt.Errorf("%w: empty recording %s", ErrPlaybackFailure, rec.ID)
	}
	if r.player == nil {
		return nil, fmt.Errorf("%w: no audio output", ErrPlaybackFailure)
	}

	r.mu.Lock()
	if r.state == StateRecording {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	r.stopPlaybackLocked()

	playCtx, cancel := context.WithCancel(ctx)
	r.playSeq++
	seq := r.playSeq
	r.playCancel = cancel
	r.state = StatePlaying
	r.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		err := r.player.Play(playCtx, rec.Payload(), rec.MimeType)
		interrupted := playCtx.Err() != nil
		cancel()

		if err != nil && interrupted {
			err = nil
		}
		if err != nil {
			r.logger.Warn("playback failed",
				zap.String("id", rec.ID),
				zap.String("stage", string(rec.Stage)),
				zap.Error(err))
			err = fmt.Errorf("%w: %w", ErrPlaybackFailure, err)
		}

		r.mu.Lock()
		if r.playSeq == seq && r.state == StatePlaying {
			r.state = StateIdle
			r.playCancel = nil
		}
		r.mu.Unlock()

		done <- err
		close(done)
		if r.opts.OnPlaybackEnd != nil {
			r.opts.OnPlaybackEnd(rec, err)
		}
	}()
	return done, nil
}

// StopPlayback interrupts the running playback, if any.
func (r *Recorder) StopPlayback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopPlaybackLocked()
}

// Close stops playback and discards any take in progress, releasing the
// microphone. It is safe to call more than once.
func (r *Recorder) Close() error {
	r.StopPlayback()
	if _, ok := r.Stop(); ok {
		r.logger.Debug("discarded unfinished take on close")
	}
	return nil
}

func (r *Recorder) stopPlaybackLocked() {
	if r.playCancel == nil {
		return
	}
	r.playCancel()
	r.playCancel = nil
	r.playSeq++
	if r.state == StatePlaying {
		r.state = StateIdle
	}
}

// pump copies the device stream into the take's buffer until the stream
// ends or is closed.
func (r *Recorder) pump(t *take) {
	defer close(t.done)
	if _, err := io.Copy(&t.buf, t.stream); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		t.readErr = err
	}
}
