package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// FileMedium stores every key in one JSON object file.
//
// Reads take a shared advisory lock and writes an exclusive one on
// "<path>.lock". Writes replace the file atomically via a temp file and
// rename, so a crash never leaves a half-written state file. Two processes
// writing different keys still race at the read-modify-write level; the
// last writer wins.
type FileMedium struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewFileMedium creates a file medium at path, creating parent directories.
func NewFileMedium(path string) (*FileMedium, error) {
	if path == "" {
		return nil, errors.New("file medium: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file medium: ensure directory: %w", err)
	}
	return &FileMedium{path: path, lock: flock.New(path + ".lock")}, nil
}

// Path returns the state file path.
func (f *FileMedium) Path() string {
	return f.path
}

func (f *FileMedium) Load(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileMedium) Store(_ context.Context, key, value string) error {
	return f.update(func(values map[string]string) {
		values[key] = value
	})
}

func (f *FileMedium) Remove(_ context.Context, key string) error {
	return f.update(func(values map[string]string) {
		delete(values, key)
	})
}

func (f *FileMedium) Keys(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return nil, err
	}
	return sortedKeys(values), nil
}

// Clear replaces the state file with an empty object without reading it,
// so it also recovers a file that no longer parses.
func (f *FileMedium) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	return f.write(map[string]string{})
}

func (f *FileMedium) Close() error {
	return f.lock.Close()
}

func (f *FileMedium) update(mutate func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	mutate(values)
	return f.write(values)
}

// read loads the state file. A missing file is an empty state.
func (f *FileMedium) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileMedium) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
