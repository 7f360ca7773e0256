// Package capture records audio from the microphone and plays clips back.
//
// The hardware sits behind two small interfaces so tests can replace it:
//
//	type Source interface { Open(ctx) (io.ReadCloser, error) }
//	type Player interface { Play(ctx, payload, mimeType) error }
//
// # Recorder
//
// Recorder drives one Source and one Player through a small state machine:
//
//	Idle -> Recording -> Idle   (Start / Stop)
//	Idle -> Playing   -> Idle   (Play / playback end or StopPlayback)
//
// Recording and playback never overlap. Start interrupts a running
// playback; Play while recording fails with ErrBusy.
//
//	rec := capture.NewRecorder(source, player, capture.Options{MimeType: "audio/mpeg"}, logger)
//	defer rec.Close()
//
//	if err := rec.Start(ctx, key); err != nil {
//	    // ErrMicrophoneUnavailable, the recorder is idle again
//	}
//	clip, ok := rec.Stop()
//
// # Command backends
//
// CommandSource and CommandPlayer run external programs (ffmpeg and ffplay
// by default) and exchange audio with them over stdout and stdin.
package capture
