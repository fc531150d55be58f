package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"vlogman/internal/faults"
)

// LockFileName is created in the working directory while a run is active.
const LockFileName = ".vlog-manager.lock"

// ErrBusy reports that another run already holds the lock.
var ErrBusy = errors.New("another vlogman run is active in this directory")

// Lock is an exclusive advisory lock on one working directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for dir without waiting.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, LockFileName)
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrFileSystem, "acquire lock", path, err)
	}
	if !ok {
		return nil, faults.Wrap(faults.ErrFileSystem, "acquire lock", path, ErrBusy)
	}
	return l, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. The lock file itself is left behind.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
