package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var (
	// ErrStorageWrite marks a value the medium refused to persist.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageRead marks a value the medium could not return or that did not parse.
	ErrStorageRead = errors.New("storage read failed")
)

// entry is a mirrored value. Deleted entries shadow whatever the medium
// still holds for the key.
type entry struct {
	value   string
	deleted bool
}

// Adapter provides typed, best-effort JSON persistence over a Medium.
//
// Every write lands in the in-memory mirror first. If the medium then
// rejects it, the failure is logged and the mirror keeps the new value, so
// the rest of the session sees what was set. Nothing here returns a storage
// error to the caller.
type Adapter struct {
	medium Medium
	mirror *gocache.Cache
	logger *zap.Logger

	// detached is set once a Clear failed on the medium; from then on the
	// medium is no longer read, only written.
	detached atomic.Bool
}

// NewAdapter wraps medium. A nil logger is replaced with a no-op logger.
func NewAdapter(medium Medium, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if medium == nil {
		medium = NewMemoryMedium()
	}
	return &Adapter{
		medium: medium,
		mirror: gocache.New(gocache.NoExpiration, 0),
		logger: logger.Named("kv"),
	}
}

// OpenAdapter opens the medium described by opts and wraps it. When the
// medium is unavailable the adapter degrades to memory only, with a warning.
func OpenAdapter(ctx context.Context, opts Options, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	medium, err := Open(ctx, opts)
	if err != nil {
		logger.Warn("storage medium unavailable, keeping state in memory for this session",
			zap.String("backend", string(opts.Backend)),
			zap.Error(err))
		medium = NewMemoryMedium()
	}
	return NewAdapter(medium, logger)
}

// Get returns the value stored under key, or def when the key is missing
// or its stored form does not parse as T.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok := a.load(ctx, key)
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		a.logger.Warn("stored value unreadable, using default",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %v", ErrStorageRead, err)))
		return def
	}
	return value
}

// Set stores value under key as JSON. A value that cannot be marshalled
// leaves both mirror and medium untouched.
func Set[T any](ctx context.Context, a *Adapter, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("value not serializable, keeping previous state",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %v", ErrStorageWrite, err)))
		return
	}
	a.store(ctx, key, string(data))
}

// Has reports whether key currently holds a value.
func (a *Adapter) Has(ctx context.Context, key string) bool {
	_, ok := a.load(ctx, key)
	return ok
}

// Delete removes key from the mirror and the medium.
func (a *Adapter) Delete(ctx context.Context, key string) {
	a.mirror.Set(key, entry{deleted: true}, gocache.NoExpiration)
	if err := a.medium.Remove(ctx, key); err != nil {
		a.logger.Warn("storage delete failed, key hidden for this session",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %v", ErrStorageWrite, err)))
	}
}

// Keys lists the keys visible to this session in ascending order: what the
// medium holds plus values only kept in memory, minus deleted keys. A medium
// that cannot be listed leaves only the in-memory keys, with a warning.
func (a *Adapter) Keys(ctx context.Context) []string {
	visible := make(map[string]string)
	if !a.detached.Load() {
		keys, err := a.medium.Keys(ctx)
		if err != nil {
			a.logger.Warn("storage listing failed, showing in-memory keys only",
				zap.Error(fmt.Errorf("%w: %v", ErrStorageRead, err)))
		}
		for _, k := range keys {
			visible[k] = ""
		}
	}
	for k, item := range a.mirror.Items() {
		if item.Object.(entry).deleted {
			delete(visible, k)
			continue
		}
		visible[k] = ""
	}
	return sortedKeys(visible)
}

// Clear removes every key from the mirror and the medium.
func (a *Adapter) Clear(ctx context.Context) {
	a.mirror.Flush()
	if err := a.medium.Clear(ctx); err != nil {
		a.detached.Store(true)
		a.logger.Warn("storage clear failed, ignoring persisted state for this session",
			zap.Error(fmt.Errorf("%w: %v", ErrStorageWrite, err)))
	}
}

// Close closes the medium.
func (a *Adapter) Close() error {
	return a.medium.Close()
}

func (a *Adapter) load(ctx context.Context, key string) (string, bool) {
	if cached, ok := a.mirror.Get(key); ok {
		e := cached.(entry)
		if e.deleted {
			return "", false
		}
		return e.value, true
	}
	if a.detached.Load() {
		return "", false
	}

	value, ok, err := a.medium.Load(ctx, key)
	if err != nil {
		a.logger.Warn("storage read failed",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %v", ErrStorageRead, err)))
		return "", false
	}
	if !ok {
		return "", false
	}
	a.mirror.Set(key, entry{value: value}, gocache.NoExpiration)
	return value, true
}

func (a *Adapter) store(ctx context.Context, key, value string) {
	a.mirror.Set(key, entry{value: value}, gocache.NoExpiration)
	if err := a.medium.Store(ctx, key, value); err != nil {
		a.logger.Warn("storage write failed, value kept in memory for this session",
			zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %v", ErrStorageWrite, err)))
	}
}
