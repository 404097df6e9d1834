package writer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oxhq/langconv/internal/corefile"
	"github.com/oxhq/langconv/internal/model"
	"github.com/oxhq/langconv/internal/util"
)

// -----------------------------------------------------------------------------
// Types & helpers
// -----------------------------------------------------------------------------

// StagedChange represents a single file's pending conversion stored in the
// staging area.
//
// NOTE: the diff preview is not stored to keep the JSON small; it is always
// regenerated on demand from OriginalContent <-> ModifiedContent.
// -----------------------------------------------------------------------------
type StagedChange struct {
	Path            string    `json:"path"`
	Language        string    `json:"language"` // target variant, e.g. "zh-cn"
	OriginalContent string    `json:"original_content"`
	ModifiedContent string    `json:"modified_content"`
	OriginalSHA256  string    `json:"original_sha256"`
	ModifiedSHA256  string    `json:"modified_sha256"`
	SizeDelta       int64     `json:"size_delta"`
	Timestamp       time.Time `json:"timestamp"`
	Operation       string    `json:"operation"` // "modify" | "create" | "delete"
}

// sha256Hex returns the SHA‑256 of data as hex string; empty string for a nil or empty slice.
func sha256Hex(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// -----------------------------------------------------------------------------
// StagingWriter: stores changes under the .langconv/ directory (no fs mutation)
// -----------------------------------------------------------------------------

type StagingWriter struct {
	stagingDir string
	language   string
	mu         sync.Mutex
	changes    []StagedChange
}

func NewStagingWriter(language string) *StagingWriter {
	return &StagingWriter{
		stagingDir: ".langconv",
		language:   language,
		changes:    make([]StagedChange, 0, 8),
	}
}

// WriteFile records the desired content under the staging dir; it never modifies
// the target path on disk.
func (w *StagingWriter) WriteFile(path string, content []byte, _ os.FileMode) error {
	// read current file (best‑effort)
	originalContent, readErr := os.ReadFile(path) // if not exist, treat as create
	operation := "modify"
	if os.IsNotExist(readErr) {
		operation = "create"
	}

	change := StagedChange{
		Path:            path,
		Language:        w.language,
		OriginalContent: string(originalContent),
		ModifiedContent: string(content),
		OriginalSHA256:  sha256Hex(originalContent),
		ModifiedSHA256:  sha256Hex(content),
		SizeDelta:       int64(len(content)) - int64(len(originalContent)),
		Timestamp:       time.Now(),
		Operation:       operation, // we currently only support modify/create
	}

	w.mu.Lock()
	w.changes = append(w.changes, change)
	w.mu.Unlock()

	if err := os.MkdirAll(w.stagingDir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	changeFile := filepath.Join(w.stagingDir, safeFileName(path))
	data, err := json.MarshalIndent(change, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := os.WriteFile(changeFile, data, 0o644); err != nil {
		return fmt.Errorf("write change file: %w", err)
	}
	return nil
}

// Summary returns a unified diff preview for all staged changes.
func (w *StagingWriter) Summary() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.changes) == 0 {
		return "No changes staged."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Staged %d change(s) in %s/:\n", len(w.changes), w.stagingDir))
	for _, c := range w.changes {
		diff := util.UnifiedDiff(c.OriginalContent, c.ModifiedContent, c.Path, 3, false)
		if diff != "" {
			sb.WriteString("\n" + diff)
		}
	}
	sb.WriteString("\nRun 'langconv commit' to apply these changes.\n")
	return sb.String()
}

func safeFileName(path string) string {
	// Produce a filename safe within staging dir
	rep := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return fmt.Sprintf("change_%s.json", rep.Replace(path))
}

// -----------------------------------------------------------------------------
// CommitWriter: applies staged JSON files atomically & safely
// -----------------------------------------------------------------------------

type CommitWriter struct {
	stagingDir   string
	appliedFiles []string
	skippedFiles []string
}

func NewCommitWriter() *CommitWriter {
	return &CommitWriter{
		stagingDir:   ".langconv",
		appliedFiles: make([]string, 0, 8),
		skippedFiles: make([]string, 0, 8),
	}
}

// WriteFile is not supported; use ApplyStagedChanges
func (*CommitWriter) WriteFile(string, []byte, os.FileMode) error {
	return errors.New("CommitWriter does not support WriteFile; call ApplyStagedChanges")
}

// ApplyStagedChanges applies every staged change as a single transaction:
// all files are written through a corefile.TransactionManager, which backs
// up originals before writing and restores them if any operation fails, so
// a mid-commit error never leaves the working tree half converted.
func (w *CommitWriter) ApplyStagedChanges() error {
	entries, err := os.ReadDir(w.stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w (no %s dir)", model.ErrNoStagedChanges, w.stagingDir)
		}
		return err
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(w.stagingDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("%w (no staged files in %s)", model.ErrNoStagedChanges, w.stagingDir)
	}

	atomicWriter := corefile.NewAtomicWriter(corefile.DefaultWriteConfig())
	tm := corefile.NewTransactionManager(filepath.Join(w.stagingDir, "tx"), atomicWriter)
	if err := tm.Begin(fmt.Sprintf("commit %d staged change(s)", len(files))); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, f := range files {
		if err := w.applyChangeFile(tm, atomicWriter, f); err != nil {
			if rbErr := tm.Rollback(); rbErr != nil {
				return fmt.Errorf("apply %s failed (%w); rollback also failed: %v", f, err, rbErr)
			}
			return fmt.Errorf("apply %s failed, staged changes rolled back: %w", f, err)
		}
	}

	if err := tm.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	// Remove staging dir only once every file committed successfully.
	return os.RemoveAll(w.stagingDir)
}

func (w *CommitWriter) applyChangeFile(tm *corefile.TransactionManager, atomicWriter *corefile.AtomicWriter, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var ch StagedChange
	if err := json.Unmarshal(data, &ch); err != nil {
		return err
	}

	// Verify file hasn’t changed since staging
	currentContent, _ := os.ReadFile(ch.Path) // ignore err if not exist
	if sha256Hex(currentContent) != ch.OriginalSHA256 {
		w.skippedFiles = append(w.skippedFiles, ch.Path)
		return fmt.Errorf("file %s modified since staging; aborting", ch.Path)
	}

	if err := tm.Stage(ch.Path); err != nil {
		return err
	}

	writeErr := atomicWriter.WriteFile(ch.Path, ch.ModifiedContent)
	if compErr := tm.Finish(ch.Path, writeErr); compErr != nil && writeErr == nil {
		writeErr = compErr
	}
	if writeErr != nil {
		return writeErr
	}

	w.appliedFiles = append(w.appliedFiles, ch.Path)
	return nil
}

func (w *CommitWriter) Summary() string {
	var sb strings.Builder
	if len(w.appliedFiles) > 0 {
		sb.WriteString(fmt.Sprintf("Applied %d file(s):\n", len(w.appliedFiles)))
		for _, p := range w.appliedFiles {
			sb.WriteString("  ✓ " + p + "\n")
		}
	}
	if len(w.skippedFiles) > 0 {
		sb.WriteString(fmt.Sprintf("Skipped %d file(s) due to conflicts:\n", len(w.skippedFiles)))
		for _, p := range w.skippedFiles {
			sb.WriteString("  ✗ " + p + "\n")
		}
	}
	if sb.Len() == 0 {
		return "No changes were applied."
	}
	return sb.String()
}
