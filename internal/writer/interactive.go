package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/oxhq/langconv/internal/util"
)

// InteractiveWriter shows a colored diff for each file and asks before
// writing it. Prompting reads stdin, so the whole WriteFile body runs under
// one mutex: two workers never interleave their questions.
type InteractiveWriter struct {
	mu        sync.Mutex
	in        io.Reader
	out       io.Writer
	disk      *DiskWriter
	confirmed []string
	rejected  []string
}

// NewInteractiveWriter prompts on stdin/stdout.
func NewInteractiveWriter() *InteractiveWriter {
	return &InteractiveWriter{in: os.Stdin, out: os.Stdout, disk: NewDiskWriter()}
}

// WriteFile renders a unified diff of path's pending conversion and applies
// it only on a "y" answer. "q" aborts the whole run; anything else skips
// the file. A file whose conversion produced no diff is skipped silently.
func (w *InteractiveWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var current []byte
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		current, _ = os.ReadFile(path)
	}

	diff := util.UnifiedDiff(string(current), string(content), path, 3, true)
	if diff == "" {
		return nil
	}

	fmt.Fprint(w.out, diff)
	fmt.Fprintf(w.out, "\nApply changes to %s? [y/N/q]: ", path)

	answer, err := bufio.NewReader(w.in).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading answer: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(answer)) {
	case "y", "yes":
		w.confirmed = append(w.confirmed, path)
		return w.disk.WriteFile(path, content, perm)
	case "q", "quit":
		return fmt.Errorf("user cancelled operation")
	default:
		w.rejected = append(w.rejected, path)
		return nil
	}
}

// Summary lists what the user accepted and rejected.
func (w *InteractiveWriter) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sb strings.Builder
	if len(w.confirmed) > 0 {
		fmt.Fprintf(&sb, "Applied changes to %d file(s):\n", len(w.confirmed))
		for _, path := range w.confirmed {
			fmt.Fprintf(&sb, "  ✓ %s\n", path)
		}
	}
	if len(w.rejected) > 0 {
		fmt.Fprintf(&sb, "Rejected changes to %d file(s):\n", len(w.rejected))
		for _, path := range w.rejected {
			fmt.Fprintf(&sb, "  ✗ %s\n", path)
		}
	}
	if sb.Len() == 0 {
		return "No changes were proposed."
	}
	return sb.String()
}
