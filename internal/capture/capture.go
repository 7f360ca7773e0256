package capture

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrMicrophoneUnavailable is returned when no capture device can be
	// opened, including a denied permission.
	ErrMicrophoneUnavailable = errors.New("microphone unavailable")

	// ErrPlaybackFailure is returned when a clip cannot be played.
	ErrPlaybackFailure = errors.New("playback failed")

	// ErrBusy is returned by Play while a recording is in progress.
	ErrBusy = errors.New("recorder busy")
)

// Source opens the audio input device.
//
// The returned stream yields encoded audio until it is closed. After Close,
// reads drain whatever the device already produced and then return io.EOF.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Player plays an encoded clip through the audio output.
//
// Play blocks until playback ends. Cancelling ctx stops it early.
type Player interface {
	Play(ctx context.Context, payload []byte, mimeType string) error
}

// State is the current activity of a Recorder.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}
