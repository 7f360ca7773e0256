package model

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recording is one captured audio clip.
//
// A Recording is immutable once created. The payload is copied in by
// NewRecording and copied out by Payload, so no caller can alter the bytes
// held by a value. Re-recording produces a new Recording with a new TakeID
// that replaces the old one under the same key.
type Recording struct {
	// ID identifies the clip within its subject (see RecordingKey.ID).
	ID string

	// TakeID is unique per capture, distinguishing re-recordings of one key.
	TakeID string

	// MimeType describes the audio encoding of the payload.
	MimeType string

	// Timestamp is when capture stopped. Display and debugging only.
	Timestamp time.Time

	// Stage is the prompt that produced the clip.
	Stage Stage

	payload []byte
}

// NewRecording creates a Recording for key from a copy of payload.
func NewRecording(key RecordingKey, payload []byte, mimeType string, timestamp time.Time) Recording {
	return Recording{
		ID:        key.ID(),
		TakeID:    uuid.NewString(),
		MimeType:  mimeType,
		Timestamp: timestamp,
		Stage:     key.Stage,
		payload:   append([]byte(nil), payload...),
	}
}

// Payload returns a copy of the raw audio bytes.
func (r Recording) Payload() []byte {
	return append([]byte(nil), r.payload...)
}

// Size returns the payload length in bytes.
func (r Recording) Size() int {
	return len(r.payload)
}

// IsZero reports whether r carries no audio.
func (r Recording) IsZero() bool {
	return len(r.payload) == 0
}

// Store converts the recording to its persisted, text-encoded form.
func (r Recording) Store() StoredRecording {
	return StoredRecording{
		ID:        r.ID,
		TakeID:    r.TakeID,
		Payload:   base64.StdEncoding.EncodeToString(r.payload),
		MimeType:  r.MimeType,
		Timestamp: r.Timestamp,
		Stage:     r.Stage,
	}
}

// StoredRecording is the persisted form of a Recording with the payload
// base64-encoded for string-only storage media.
type StoredRecording struct {
	ID        string    `json:"id"`
	TakeID    string    `json:"takeId,omitempty"`
	Payload   string    `json:"payload"`
	MimeType  string    `json:"mimeType"`
	Timestamp time.Time `json:"timestamp"`
	Stage     Stage     `json:"stage"`
}

// Decode converts the stored form back into a playable Recording.
//
// Returns an error for corrupt base64 or a stage outside the closed set.
func (s StoredRecording) Decode() (Recording, error) {
	if !s.Stage.Valid() {
		return Recording{}, fmt.Errorf("decode %s: %w: %q", s.ID, ErrUnknownStage, s.Stage)
	}
	payload, err := base64.StdEncoding.DecodeString(s.Payload)
	if err != nil {
		return Recording{}, fmt.Errorf("decode %s payload: %w", s.ID, err)
	}
	return Recording{
		ID:        s.ID,
		TakeID:    s.TakeID,
		MimeType:  s.MimeType,
		Timestamp: s.Timestamp,
		Stage:     s.Stage,
		payload:   payload,
	}, nil
}

// MimeExtension returns the file extension, including the dot, for an
// audio mime type. Unknown types fall back to ".bin".
func MimeExtension(mimeType string) string {
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/mp4", "audio/aac":
		return ".m4a"
	default:
		return ".bin"
	}
}
