// Package registry persists local crmbulk state: column preferences and the
// last outcome per entity type. Files are JSON, written atomically and
// guarded by an advisory lock so concurrent invocations do not interleave.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	fileVersion    = "1.0"
	lockRetryDelay = 25 * time.Millisecond
	lockTimeout    = 5 * time.Second
)

// ErrLocked is returned when another process holds the state file lock for too long.
var ErrLocked = errors.New("state file is locked by another process")

type jsonFile struct {
	path string
	lock *flock.Flock
}

func newJSONFile(path string) (*jsonFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &jsonFile{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// withLock runs fn while holding the exclusive file lock.
func (f *jsonFile) withLock(ctx context.Context, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := f.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLocked, f.path)
		}
		return fmt.Errorf("failed to lock %s: %w", f.path, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, f.path)
	}
	defer func() { _ = f.lock.Unlock() }()

	return fn()
}

// read decodes the file into v. A missing file leaves v untouched and
// reports os.ErrNotExist.
func (f *jsonFile) read(v interface{}) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(f.path), err)
	}
	return nil
}

// write stores v via a temporary file and rename.
func (f *jsonFile) write(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(f.path), err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
