// Package corefile is the filesystem safety layer under langconv's commit
// path: lock-guarded atomic writes, and a journaled multi-file apply that
// can be rolled back when any single write fails.
package corefile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// WriteConfig controls how converted text reaches disk.
type WriteConfig struct {
	// Fsync forces the temp file to stable storage before the rename.
	Fsync bool
	// LockTimeout bounds how long a write waits on another process's
	// on-disk lock before giving up.
	LockTimeout time.Duration
	// TempSuffix names the temp file written next to the target.
	TempSuffix string
	// KeepBackup writes a timestamped copy of the target next to it
	// before replacing it.
	KeepBackup bool
}

// DefaultWriteConfig returns the settings the CLI commits with.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{
		LockTimeout: 5 * time.Second,
		TempSuffix:  ".langconv.tmp",
		KeepBackup:  true,
	}
}

// AtomicWriter replaces file contents via temp-file-plus-rename, serialized
// per target path: a sync.Mutex per path against other goroutines in this
// process, and an O_EXCL lock file on disk against other langconv processes
// converting the same tree.
type AtomicWriter struct {
	cfg   WriteConfig
	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// NewAtomicWriter returns an AtomicWriter using cfg.
func NewAtomicWriter(cfg WriteConfig) *AtomicWriter {
	return &AtomicWriter{cfg: cfg, paths: make(map[string]*sync.Mutex)}
}

// WriteFile replaces path's contents with content. The target's permission
// bits are preserved when it already exists; a missing target is created
// with 0644. Readers never observe a partial file: content lands in a temp
// file first and reaches path by rename.
func (aw *AtomicWriter) WriteFile(path, content string) error {
	lock := aw.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	release, err := aw.lockOnDisk(path)
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer release()

	mode := os.FileMode(0o644)
	info, statErr := os.Stat(path)
	if statErr == nil {
		mode = info.Mode()
	}

	if aw.cfg.KeepBackup && statErr == nil {
		if err := copyFile(path, backupName(path), mode.Perm()); err != nil {
			return fmt.Errorf("backing up %s: %w", path, err)
		}
	}

	tmp := path + aw.cfg.TempSuffix
	if err := aw.writeTemp(tmp, content, mode); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func (aw *AtomicWriter) writeTemp(tmp, content string, mode os.FileMode) error {
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if aw.cfg.Fsync {
		if err := f.Sync(); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("syncing temp file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing temp file: %w", err)
	}
	return nil
}

// pathLock returns the in-process mutex for path, creating it on first use.
// Entries are never removed; the map is bounded by the number of distinct
// files a run touches.
func (aw *AtomicWriter) pathLock(path string) *sync.Mutex {
	aw.mu.Lock()
	defer aw.mu.Unlock()
	lock, ok := aw.paths[path]
	if !ok {
		lock = &sync.Mutex{}
		aw.paths[path] = lock
	}
	return lock
}

// lockOnDisk takes the cross-process lock for path by creating path+".lock"
// with O_EXCL, retrying until LockTimeout. A lock file whose recorded PID is
// no longer alive is treated as stale and removed.
func (aw *AtomicWriter) lockOnDisk(path string) (release func(), err error) {
	lockPath := path + ".lock"
	deadline := time.Now().Add(aw.cfg.LockTimeout)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}
		if lockIsStale(lockPath) {
			os.Remove(lockPath)
			continue
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for %s", lockPath)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// lockIsStale reports whether lockPath belongs to a process that no longer
// exists. An unreadable or malformed lock file counts as stale.
func lockIsStale(lockPath string) bool {
	content, err := os.ReadFile(lockPath)
	if err != nil {
		return true
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return true
	}
	return !isProcessAlive(pid)
}

// backupName derives the timestamped backup path for a target about to be
// replaced.
func backupName(path string) string {
	return fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102-150405"))
}

// copyFile duplicates src's contents to dst with the given permissions.
func copyFile(src, dst string, perm os.FileMode) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(dst, content, perm); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}
