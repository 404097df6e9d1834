// Package writer routes converted file content to its destination: nowhere
// (dry run), straight to disk, the .langconv/ staging area, or through an
// interactive per-file prompt. Writers are shared across the runner's
// worker goroutines and must tolerate concurrent WriteFile calls.
package writer

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/oxhq/langconv/internal/util"
)

// Writer receives one converted file at a time and reports afterwards what
// it did with them.
type Writer interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	Summary() string
}

// DryRunWriter records what a run would have changed without touching disk.
type DryRunWriter struct {
	mu      sync.Mutex
	changes []pendingChange
}

type pendingChange struct {
	path  string
	delta int // bytes gained (or lost, negative) by the conversion
}

// NewDryRunWriter returns an empty DryRunWriter.
func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{}
}

// WriteFile notes the change and discards the content.
func (w *DryRunWriter) WriteFile(path string, content []byte, _ os.FileMode) error {
	var currentSize int
	if info, err := os.Stat(path); err == nil {
		currentSize = int(info.Size())
	}

	w.mu.Lock()
	w.changes = append(w.changes, pendingChange{path: path, delta: len(content) - currentSize})
	w.mu.Unlock()
	return nil
}

// Summary lists the files the run would have modified and the total size
// delta.
func (w *DryRunWriter) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.changes) == 0 {
		return "No changes would be made."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Would modify %d file(s):\n", len(w.changes))
	total := 0
	for _, c := range w.changes {
		total += c.delta
		fmt.Fprintf(&sb, "  %s (%s bytes)\n", c.path, signed(c.delta))
	}
	fmt.Fprintf(&sb, "Total: %s bytes\n", signed(total))
	return sb.String()
}

// DiskWriter writes converted files in place, atomically per file.
type DiskWriter struct {
	mu      sync.Mutex
	written []string
}

// NewDiskWriter returns an empty DiskWriter.
func NewDiskWriter() *DiskWriter {
	return &DiskWriter{}
}

// WriteFile replaces path's contents on disk.
func (w *DiskWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := util.WriteFileAtomic(path, content, perm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	w.mu.Lock()
	w.written = append(w.written, path)
	w.mu.Unlock()
	return nil
}

// Summary lists the files written.
func (w *DiskWriter) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.written) == 0 {
		return "No files were written."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Successfully wrote %d file(s):\n", len(w.written))
	for _, path := range w.written {
		fmt.Fprintf(&sb, "  %s\n", path)
	}
	return sb.String()
}

// signed formats n with an explicit sign so size deltas read as "+12"/"-3".
func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
