// Package model defines the core data structures used throughout
// the mynameis application.
//
// # Recording
//
// Recording is one captured audio clip. It is immutable: the payload is
// copied on construction and on every read.
//
//	key := model.StageKey("Emma", model.StageFullName)
//	rec := model.NewRecording(key, payload, "audio/mpeg", time.Now())
//	stored := rec.Store() // base64 payload, ready for a string-only medium
//
// # RecordingKey
//
// RecordingKey addresses a clip by subject and stage, or by subject, letter
// and position for per-letter cards:
//
//	model.StageKey("Emma", model.StageSinging).String()     // "emma/singing"
//	model.LetterKey("Emma", 'm', 2).String()                // "emma/letter-sound/M/2"
//
// # Collection
//
// Collection lays a subject's recordings out on disk for export, computing
// sanitized file names, the playlist path and the cover path.
package model
