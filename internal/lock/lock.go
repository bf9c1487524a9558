// Package lock guards a repository working copy against overlapping sync
// runs. A scheduled run and a manual invocation racing on the same branch
// would otherwise interleave their fetch-compare-commit-push sequences.
package lock

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/corrafig/louskubot/internal/storage"
)

// ErrLocked indicates another sync run already holds the lock.
var ErrLocked = errors.New("another sync run is already in progress")

// RunLock provides exclusive file-based locking using flock.
type RunLock struct {
	path string
	file *os.File
}

// ForRepo returns the run lock guarding the given repository path.
// The lock file lives in the storage dir, keyed by a hash of the path.
func ForRepo(repoPath string) (*RunLock, error) {
	dir, err := storage.Dir()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256([]byte(abs))
	name := fmt.Sprintf("sync-%x.lock", sum[:8])
	return New(filepath.Join(dir, name)), nil
}

// New creates a run lock for the given lock file path.
// The lock file will be created if it doesn't exist.
func New(path string) *RunLock {
	return &RunLock{path: path}
}

// TryLock acquires an exclusive lock without blocking.
// Returns ErrLocked if the lock is held by another process.
func (l *RunLock) TryLock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return ErrLocked
		}
		return err
	}

	l.file = f
	return nil
}

// Unlock releases the lock and closes the file.
// Safe to call when the lock was never acquired.
func (l *RunLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}

	err := l.file.Close()
	l.file = nil
	return err
}
