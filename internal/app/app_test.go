package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/mynameis/internal/config"
	"github.com/handiism/mynameis/internal/export"
	"github.com/handiism/mynameis/internal/model"
	"github.com/handiism/mynameis/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fileSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	dir := t.TempDir()
	s.StoragePath = filepath.Join(dir, "state.json")
	s.ExportPath = filepath.Join(dir, "export")
	return s
}

func TestOpen_PersistsAcrossRuns(t *testing.T) {
	ctx := context.Background()
	settings := fileSettings(t)
	key := model.StageKey("Emma", model.StageSentence)

	a := Open(ctx, settings, nil)
	require.NoError(t, a.Session.SetChildName(ctx, "Emma"))
	require.NoError(t, a.Store.Save(ctx, key, model.NewRecording(key, []byte("my name is"), "audio/mpeg", time.Now())))
	require.NoError(t, a.Close())

	b := Open(ctx, settings, nil)
	defer b.Close()
	assert.Equal(t, "Emma", b.Session.ChildName(ctx))
	rec, ok := b.Store.GetKey(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []byte("my name is"), rec.Payload())
}

func TestOpen_UnavailableStorageFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	settings := config.DefaultSettings()
	settings.StorageBackend = "tape"

	core, logs := observer.New(zap.WarnLevel)
	a := Open(ctx, settings, zap.New(core))
	defer a.Close()

	require.NoError(t, a.Session.SetChildName(ctx, "Liam"))
	assert.Equal(t, "Liam", a.Session.ChildName(ctx))
	assert.NotZero(t, logs.FilterMessageSnippet("storage medium unavailable").Len())
}

func TestApp_Export(t *testing.T) {
	ctx := context.Background()
	settings := fileSettings(t)
	settings.StorageBackend = "memory"

	a := Open(ctx, settings, nil)
	defer a.Close()

	_, err := a.Export(ctx, "", nil)
	assert.ErrorIs(t, err, session.ErrNoChildName)

	require.NoError(t, a.Session.SetChildName(ctx, "Ava"))
	_, err = a.Export(ctx, "", nil)
	assert.ErrorIs(t, err, export.ErrNothingToExport)

	key := model.LetterKey("Ava", 'A', 0)
	require.NoError(t, a.Store.Save(ctx, key, model.NewRecording(key, []byte("aaaaaaaaaaaa"), "audio/mpeg", time.Now())))

	var events []export.ProgressEvent
	result, err := a.Export(ctx, "", func(e export.ProgressEvent) { events = append(events, e) })
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, filepath.Join(settings.ExportPath, "Ava"), result.Collection.Path)
	assert.NotEmpty(t, events)
}

func TestApp_ExportUsesStoredSpelling(t *testing.T) {
	ctx := context.Background()
	settings := fileSettings(t)
	settings.StorageBackend = "memory"

	a := Open(ctx, settings, nil)
	defer a.Close()

	require.NoError(t, a.Session.SetChildName(ctx, "Emma"))
	key := model.StageKey("Emma", model.StageFullName)
	require.NoError(t, a.Store.Save(ctx, key, model.NewRecording(key, []byte("emmaemmaemma"), "audio/mpeg", time.Now())))

	result, err := a.Export(ctx, "  emma ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Emma", result.Collection.DisplayName)
	assert.Equal(t, filepath.Join(settings.ExportPath, "Emma"), result.Collection.Path)
}
