// Package runlock enforces single-instance execution for mutating runs.
// Two concurrent extraction runs would race on the append-only tables and
// the global index, so the extract command takes a file lock first.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another process already holds the lock.
var ErrHeld = errors.New("another papercard run is already in progress")

// Acquire takes a non-blocking file lock at path. On success the returned
// function releases the lock; callers defer it for the run's duration.
func Acquire(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", path, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}
