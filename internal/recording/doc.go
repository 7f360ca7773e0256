// Package recording stores captured clips under their composite keys.
//
// All recordings share one persisted value, a JSON object mapping each
// RecordingKey string to its base64 StoredRecording:
//
//	store := recording.NewStore(adapter, logger)
//	_ = store.Save(ctx, model.StageKey("Emma", model.StageFullName), rec)
//	rec, ok := store.GetKey(ctx, model.StageKey("Emma", model.StageFullName))
//
// Lookups never fail: a missing key, a corrupt payload or an unreadable
// medium all read as "not found".
package recording
