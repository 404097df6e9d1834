//go:build !windows

package corefile

import (
	"os"
	"syscall"
)

// isProcessAlive reports whether pid names a running process. Signal 0
// probes for existence without delivering anything.
func isProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
