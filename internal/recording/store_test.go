package recording

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/handiism/mynameis/internal/kv"
	"github.com/handiism/mynameis/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const mime = "audio/mpeg"

func newTestStore(t *testing.T) (*Store, *kv.MemoryMedium) {
	t.Helper()
	medium := kv.NewMemoryMedium()
	return NewStore(kv.NewAdapter(medium, zap.NewNop()), zap.NewNop()), medium
}

func record(key model.RecordingKey, payload string) model.Recording {
	return model.NewRecording(key, []byte(payload), mime, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	payload := []byte{0x00, 0xff, 0x10, 'I', 'D', '3', 0x7f}
	key := model.LetterKey("Emma", 'E', 0)
	rec := model.NewRecording(key, payload, mime, time.Now())

	require.NoError(t, store.Save(ctx, key, rec))

	got, ok := store.Get(ctx, "Emma", 'E', 0)
	require.True(t, ok)
	assert.Equal(t, payload, got.Payload())
	assert.Equal(t, rec.TakeID, got.TakeID)
	assert.Equal(t, model.StageLetterSound, got.Stage)
	assert.Equal(t, "e0-letter-sound", got.ID)
}

func TestStore_RoundTripSurvivesNewSession(t *testing.T) {
	ctx := context.Background()
	store, medium := newTestStore(t)

	key := model.StageKey("Emma", model.StageSinging)
	require.NoError(t, store.Save(ctx, key, record(key, "la la")))

	reloaded := NewStore(kv.NewAdapter(medium, zap.NewNop()), zap.NewNop())
	got, ok := reloaded.GetKey(ctx, model.StageKey(" EMMA ", model.StageSinging))
	require.True(t, ok)
	assert.Equal(t, []byte("la la"), got.Payload())
}

func TestStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	key := model.StageKey("Emma", model.StageFullName)

	first := record(key, "first take")
	second := record(key, "second take")
	require.NoError(t, store.Save(ctx, key, first))
	require.NoError(t, store.Save(ctx, key, second))

	got, ok := store.GetKey(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []byte("second take"), got.Payload())
	assert.Equal(t, second.TakeID, got.TakeID)
	assert.Len(t, store.ListForSubject(ctx, "Emma"), 1)
}

func TestStore_Absence(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	assert.NotPanics(t, func() {
		_, ok := store.Get(ctx, "Nobody", 'N', 0)
		assert.False(t, ok)
	})
	_, ok := store.GetKey(ctx, model.StageKey("Nobody", model.StageSentence))
	assert.False(t, ok)
	assert.False(t, store.Exists(ctx, model.RecordingKey{}))
}

func TestStore_SaveRejectsInvalidKey(t *testing.T) {
	ctx := context.Background()
	store, medium := newTestStore(t)

	tests := []struct {
		name string
		key  model.RecordingKey
	}{
		{"empty subject", model.StageKey("  ", model.StageFullName)},
		{"separator in subject", model.StageKey("a/b", model.StageFullName)},
		{"unknown stage", model.StageKey("Emma", "rhyme")},
		{"letter without letter", model.LetterKey("Emma", 0, 0)},
		{"negative position", model.LetterKey("Emma", 'E', -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(ctx, tt.key, record(tt.key, "x"))
			assert.True(t, errors.Is(err, model.ErrInvalidKey))
		})
	}

	keys, err := medium.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_KeysAreDistinctPerTuple(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	// A and A at different positions, plus a fixed stage
	keys := []model.RecordingKey{
		model.LetterKey("Anna", 'A', 0),
		model.LetterKey("Anna", 'A', 3),
		model.LetterKey("Anna", 'N', 1),
		model.StageKey("Anna", model.StagePhonetic),
	}
	for i, k := range keys {
		require.NoError(t, store.Save(ctx, k, record(k, string(rune('a'+i)))))
	}

	for i, k := range keys {
		got, ok := store.GetKey(ctx, k)
		require.True(t, ok, k.String())
		assert.Equal(t, []byte(string(rune('a'+i))), got.Payload())
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	key := model.StageKey("Emma", model.StageSentence)

	require.NoError(t, store.Save(ctx, key, record(key, "my name is emma")))
	assert.True(t, store.Exists(ctx, key))

	assert.True(t, store.Delete(ctx, key))
	assert.False(t, store.Exists(ctx, key))
	assert.False(t, store.Delete(ctx, key))
}

func TestStore_ListForSubject(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	saves := []model.RecordingKey{
		model.StageKey("Emma", model.StageSinging),
		model.LetterKey("Emma", 'M', 1),
		model.StageKey("Emma", model.StageFullName),
		model.LetterKey("Emma", 'E', 0),
		model.StageKey("Emmanuel", model.StageFullName),
		model.StageKey("Liam", model.StageFullName),
	}
	for _, k := range saves {
		require.NoError(t, store.Save(ctx, k, record(k, k.String())))
	}

	entries := store.ListForSubject(ctx, "emma")
	var got []string
	for _, e := range entries {
		got = append(got, e.Key.String())
	}
	assert.Equal(t, []string{
		"emma/full-name",
		"emma/letter-sound/E/0",
		"emma/letter-sound/M/1",
		"emma/singing",
	}, got)
}

func TestStore_ListSkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemoryMedium()
	require.NoError(t, medium.Store(ctx, RecordingsKey, `{
		"emma/full-name": {"id":"full-name","payload":"aGVsbG8=","mimeType":"audio/mpeg","stage":"full-name"},
		"emma/singing": {"id":"singing","payload":"!!not base64!!","mimeType":"audio/mpeg","stage":"singing"},
		"emma/rhyme": {"id":"rhyme","payload":"aGVsbG8=","mimeType":"audio/mpeg","stage":"rhyme"}
	}`))
	store := NewStore(kv.NewAdapter(medium, zap.NewNop()), zap.NewNop())

	entries := store.ListForSubject(ctx, "Emma")
	require.Len(t, entries, 1)
	assert.Equal(t, []byte("hello"), entries[0].Recording.Payload())

	_, ok := store.GetKey(ctx, model.StageKey("Emma", model.StageSinging))
	assert.False(t, ok)
}

func TestStore_CompletionStatus(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, stage := range []model.Stage{model.StageFullName, model.StagePhonetic, model.StageSinging} {
		key := model.StageKey("Emma", stage)
		require.NoError(t, store.Save(ctx, key, record(key, string(stage))))
	}
	// letter sounds do not count towards the fixed aggregate
	letter := model.LetterKey("Emma", 'E', 0)
	require.NoError(t, store.Save(ctx, letter, record(letter, "eh")))

	status := store.CompletionStatus(ctx, "Emma")
	assert.Equal(t, model.CompletionStatus{Recorded: 3, Total: 4, Percentage: 75}, status)
	assert.False(t, status.Complete())

	key := model.StageKey("Emma", model.StageSentence)
	require.NoError(t, store.Save(ctx, key, record(key, "sentence")))
	assert.True(t, store.CompletionStatus(ctx, "Emma").Complete())

	assert.Equal(t, model.CompletionStatus{Total: 4}, store.CompletionStatus(ctx, "Liam"))
}

func TestStore_LetterProgress(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, card := range model.Letters("Emma")[:2] {
		key := card.Key("Emma")
		require.NoError(t, store.Save(ctx, key, record(key, string(card.Letter))))
	}

	assert.Equal(t, model.LetterProgress{Recorded: 2, Total: 4}, store.LetterProgress(ctx, "Emma"))
	assert.Equal(t, model.LetterProgress{}, store.LetterProgress(ctx, "  "))
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, medium := newTestStore(t)
	key := model.StageKey("Emma", model.StageFullName)
	require.NoError(t, store.Save(ctx, key, record(key, "x")))

	store.Clear(ctx)

	assert.False(t, store.Exists(ctx, key))
	_, ok, err := medium.Load(ctx, RecordingsKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
