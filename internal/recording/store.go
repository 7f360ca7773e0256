package recording

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/handiism/mynameis/internal/kv"
	"github.com/handiism/mynameis/internal/model"
	"go.uber.org/zap"
)

// RecordingsKey is the persisted key holding every stored recording.
const RecordingsKey = "mynameis.recordings"

// FixedStageCount is the total used by CompletionStatus.
const FixedStageCount = 4

// Entry is one stored recording together with its key.
type Entry struct {
	Key       model.RecordingKey
	Recording model.Recording
}

// Store persists recordings under their composite keys.
//
// The whole mapping lives under RecordingsKey as one JSON object of
// StoredRecording values. Every save rebuilds the mapping and writes it once,
// so a failed write never leaves a partially updated value behind.
type Store struct {
	adapter *kv.Adapter
	logger  *zap.Logger

	// mu serializes read-modify-write cycles on the mapping.
	mu sync.Mutex
}

// NewStore creates a Store over adapter.
func NewStore(adapter *kv.Adapter, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{adapter: adapter, logger: logger.Named("recording")}
}

// Save upserts rec under key. Only an invalid key is reported; storage
// failures are logged by the adapter and the session keeps the new value.
func (s *Store) Save(ctx context.Context, key model.RecordingKey, rec model.Recording) error {
	if err := key.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.load(ctx))
	if next == nil {
		next = make(map[string]model.StoredRecording)
	}
	next[key.String()] = rec.Store()
	kv.Set(ctx, s.adapter, RecordingsKey, next)

	s.logger.Debug("recording saved",
		zap.String("key", key.String()),
		zap.String("stage", string(rec.Stage)),
		zap.Int("bytes", rec.Size()))
	return nil
}

// Get looks up the letter card of subject at position.
func (s *Store) Get(ctx context.Context, subject string, letter rune, position int) (model.Recording, bool) {
	return s.GetKey(ctx, model.LetterKey(subject, letter, position))
}

// GetKey looks up any key. A missing or undecodable entry is not found.
func (s *Store) GetKey(ctx context.Context, key model.RecordingKey) (model.Recording, bool) {
	if key.Validate() != nil {
		return model.Recording{}, false
	}

	s.mu.Lock()
	stored, ok := s.load(ctx)[key.String()]
	s.mu.Unlock()
	if !ok {
		return model.Recording{}, false
	}

	rec, err := stored.Decode()
	if err != nil {
		s.logger.Warn("stored recording unreadable",
			zap.String("key", key.String()),
			zap.Error(err))
		return model.Recording{}, false
	}
	return rec, true
}

// Exists reports whether key holds a playable recording.
func (s *Store) Exists(ctx context.Context, key model.RecordingKey) bool {
	_, ok := s.GetKey(ctx, key)
	return ok
}

// Delete removes the entry under key. Deleting a missing key does nothing.
func (s *Store) Delete(ctx context.Context, key model.RecordingKey) bool {
	if key.Validate() != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx)
	if _, ok := current[key.String()]; !ok {
		return false
	}
	next := maps.Clone(current)
	delete(next, key.String())
	kv.Set(ctx, s.adapter, RecordingsKey, next)
	return true
}

// ListForSubject returns every readable recording of subject in deck order.
func (s *Store) ListForSubject(ctx context.Context, subject string) []Entry {
	prefix := model.SubjectPrefix(subject)

	s.mu.Lock()
	current := s.load(ctx)
	s.mu.Unlock()

	var entries []Entry
	for raw, stored := range current {
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		key, err := model.ParseKey(raw)
		if err != nil {
			s.logger.Warn("skipping malformed recording key", zap.String("key", raw), zap.Error(err))
			continue
		}
		rec, err := stored.Decode()
		if err != nil {
			s.logger.Warn("skipping unreadable recording", zap.String("key", raw), zap.Error(err))
			continue
		}
		entries = append(entries, Entry{Key: key, Recording: rec})
	}

	keys := make([]model.RecordingKey, len(entries))
	byKey := make(map[string]Entry, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
		byKey[e.Key.String()] = e
	}
	model.SortKeys(keys)
	for i, k := range keys {
		entries[i] = byKey[k.String()]
	}
	return entries
}

// CompletionStatus counts the fixed stages recorded for subject out of
// FixedStageCount. Letter sounds are reported by LetterProgress instead.
func (s *Store) CompletionStatus(ctx context.Context, subject string) model.CompletionStatus {
	recorded := make(map[model.Stage]bool)
	for _, e := range s.ListForSubject(ctx, subject) {
		if !e.Key.Stage.IsLetter() {
			recorded[e.Key.Stage] = true
		}
	}
	return model.NewCompletionStatus(len(recorded), FixedStageCount)
}

// LetterProgress counts the letter cards of name that have a recording.
func (s *Store) LetterProgress(ctx context.Context, name string) model.LetterProgress {
	cards := model.Letters(name)
	progress := model.LetterProgress{Total: len(cards)}
	if len(cards) == 0 {
		return progress
	}

	recorded := make(map[string]bool)
	for _, e := range s.ListForSubject(ctx, name) {
		if e.Key.Stage.IsLetter() {
			recorded[e.Key.String()] = true
		}
	}
	for _, card := range cards {
		if recorded[card.Key(name).String()] {
			progress.Recorded++
		}
	}
	return progress
}

// Clear drops every stored recording.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter.Delete(ctx, RecordingsKey)
}

func (s *Store) load(ctx context.Context) map[string]model.StoredRecording {
	return kv.Get(ctx, s.adapter, RecordingsKey, map[string]model.StoredRecording(nil))
}
