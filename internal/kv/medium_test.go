package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseMedium runs the Medium contract against m.
func exerciseMedium(t *testing.T, m Medium) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := m.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Store(ctx, "b", "2"))
	require.NoError(t, m.Store(ctx, "a", "1"))
	require.NoError(t, m.Store(ctx, "a", "one"))

	v, ok, err := m.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, m.Remove(ctx, "a"))
	require.NoError(t, m.Remove(ctx, "a"))
	_, ok, err = m.Load(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Clear(ctx))
	keys, err = m.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryMedium(t *testing.T) {
	exerciseMedium(t, NewMemoryMedium())
}

func TestFileMedium(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	m, err := NewFileMedium(path)
	require.NoError(t, err)
	defer m.Close()

	exerciseMedium(t, m)
}

func TestFileMedium_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	m, err := NewFileMedium(path)
	require.NoError(t, err)
	require.NoError(t, m.Store(ctx, "mynameis.childName", `"Emma"`))
	require.NoError(t, m.Close())

	reopened, err := NewFileMedium(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Load(ctx, "mynameis.childName")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"Emma"`, v)
}

func TestFileMedium_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	m, err := NewFileMedium(path)
	require.NoError(t, err)
	defer m.Close()

	_, _, err = m.Load(ctx, "k")
	assert.Error(t, err)

	// a corrupt state file must not be silently overwritten
	assert.Error(t, m.Store(ctx, "k", "v"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{oops", string(data))
}

func TestFileMedium_ClearRecoversCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	m, err := NewFileMedium(path)
	require.NoError(t, err)
	require.NoError(t, m.Clear(ctx))

	require.NoError(t, m.Store(ctx, "mynameis.childName", `"Emma"`))
	require.NoError(t, m.Close())

	reopened, err := NewFileMedium(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Load(ctx, "mynameis.childName")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"Emma"`, v)
}

func TestSQLiteMedium(t *testing.T) {
	ctx := context.Background()
	m, err := NewSQLiteMedium(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer m.Close()

	exerciseMedium(t, m)
}

func TestSQLiteMedium_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	m, err := NewSQLiteMedium(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.Store(ctx, "k", "v"))
	require.NoError(t, m.Close())

	reopened, err := NewSQLiteMedium(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Load(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestRedisMedium(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	m := NewRedisMedium(client, "test:")

	mock.ExpectGet("test:missing").RedisNil()
	mock.ExpectSet("test:a", "1", 0).SetVal("OK")
	mock.ExpectGet("test:a").SetVal("1")
	mock.ExpectKeys("test:*").SetVal([]string{"test:b", "test:a"})
	mock.ExpectDel("test:a").SetVal(1)
	mock.ExpectKeys("test:*").SetVal([]string{"test:b"})
	mock.ExpectDel("test:b").SetVal(1)

	_, ok, err := m.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Store(ctx, "a", "1"))

	v, ok, err := m.Load(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, m.Remove(ctx, "a"))
	require.NoError(t, m.Clear(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisMedium_ErrorsSurface(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	m := NewRedisMedium(client, "")

	mock.ExpectSet("mynameis:a", "1", 0).SetErr(errQuota)
	assert.ErrorIs(t, m.Store(ctx, "a", "1"), errQuota)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "tape"})
	assert.Error(t, err)
}
