// Package filelock serialises writers of a board file across processes with
// an advisory lock held on a sidecar file next to it.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lockFileMode  = 0o600
	retryInterval = 5 * time.Millisecond
)

// errWouldBlock is returned by tryLock when another handle holds the lock.
var errWouldBlock = errors.New("lock held elsewhere")

// Lock is a held lock. Release it exactly once.
type Lock struct {
	f *os.File
}

// PathFor returns the sidecar lock path guarding target: ".<name>.lock" in
// the same directory.
func PathFor(target string) string {
	dir, name := filepath.Split(target)
	return filepath.Join(dir, "."+name+".lock")
}

// Acquire takes an exclusive lock on the file at path, creating it if
// needed. It waits until the lock is free or ctx is done.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path derived from the board path
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	for {
		err := tryLock(f)
		if err == nil {
			return &Lock{f: f}, nil
		}
		if !errors.Is(err, errWouldBlock) {
			_ = f.Close()
			return nil, fmt.Errorf("locking %s: %w", path, err)
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, fmt.Errorf("locking %s: %w", path, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

// Release drops the lock and closes the lock file. The sidecar file is left
// in place so concurrent lockers always contend on the same inode.
func (l *Lock) Release() error {
	unlockErr := unlock(l.f)
	closeErr := l.f.Close()
	if unlockErr != nil {
		return fmt.Errorf("unlocking: %w", unlockErr)
	}
	return closeErr
}
