package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scanner handles recursive directory traversal with filtering, selecting
// the text files a conversion run should process.
type Scanner struct {
	maxBytes       int64
	followSymlinks bool
	includeGlobs   []string
	excludeGlobs   []string
	extensions     []string
}

// Config holds scanner configuration options.
type Config struct {
	MaxBytes       int64
	FollowSymlinks bool
	IncludeGlobs   []string
	ExcludeGlobs   []string
	// Extensions restricts scanning to files with one of these extensions
	// (each including its leading dot, e.g. ".txt"). Empty means no
	// extension filtering.
	Extensions []string
}

// New creates a new scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{
		maxBytes:       cfg.MaxBytes,
		followSymlinks: cfg.FollowSymlinks,
		includeGlobs:   cfg.IncludeGlobs,
		excludeGlobs:   cfg.ExcludeGlobs,
		extensions:     cfg.Extensions,
	}
}

// ScanTargets processes a list of file and directory targets, returning a
// deduplicated list of files to convert.
func (s *Scanner) ScanTargets(ctx context.Context, targets []string) ([]string, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		targets = []string{cwd}
	}

	var allFiles []string
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files, err := s.scanTarget(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("scanning target %s: %w", target, err)
		}
		allFiles = append(allFiles, files...)
	}

	return deduplicateFiles(allFiles), nil
}

// scanTarget processes a single target (file or directory).
func (s *Scanner) scanTarget(ctx context.Context, target string) ([]string, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, fmt.Errorf("accessing target %s: %w", target, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !s.followSymlinks {
			return nil, nil
		}
		resolved, err := filepath.EvalSymlinks(target)
		if err != nil {
			return nil, fmt.Errorf("resolving symlink %s: %w", target, err)
		}
		return s.scanTarget(ctx, resolved)
	}

	if info.Mode().IsRegular() {
		if s.shouldProcessFile(target, info) {
			return []string{target}, nil
		}
		return nil, nil
	}

	if info.IsDir() {
		return s.scanDirectory(ctx, target)
	}

	return nil, nil
}

// scanDirectory recursively scans a directory for files.
func (s *Scanner) scanDirectory(ctx context.Context, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fullPath := filepath.Join(dir, path)

		if d.IsDir() {
			if shouldSkipDirectory(path) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("getting file info for %s: %w", fullPath, err)
			}
			if s.shouldProcessFile(fullPath, info) {
				files = append(files, fullPath)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}

	return files, nil
}

// shouldProcessFile determines if a file should be processed based on
// extension, size, and glob criteria.
func (s *Scanner) shouldProcessFile(path string, info os.FileInfo) bool {
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return false
	}

	if len(s.extensions) > 0 {
		ext := filepath.Ext(path)
		if !slices.ContainsFunc(s.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
			return false
		}
	}

	if len(s.includeGlobs) > 0 && !matchesAny(path, s.includeGlobs) {
		return false
	}
	if matchesAny(path, s.excludeGlobs) {
		return false
	}

	return true
}

// matchesAny reports whether path (tried both in full and as a basename)
// matches any of patterns, using doublestar's "**" aware glob syntax.
func matchesAny(path string, patterns []string) bool {
	basename := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, basename); err == nil && matched {
			return true
		}
	}
	return false
}

// shouldSkipDirectory determines if a directory should be skipped during
// traversal.
func shouldSkipDirectory(path string) bool {
	dirname := filepath.Base(path)

	skipDirs := []string{".git", "vendor", "node_modules", "dist", "build", ".langconv"}
	if slices.Contains(skipDirs, dirname) {
		return true
	}

	if strings.HasPrefix(dirname, ".") && dirname != "." {
		return true
	}

	return false
}

// deduplicateFiles removes duplicate file paths from the list, preserving
// first-seen order.
func deduplicateFiles(files []string) []string {
	seen := make(map[string]bool, len(files))
	result := make([]string, 0, len(files))

	for _, file := range files {
		if !seen[file] {
			seen[file] = true
			result = append(result, file)
		}
	}

	return result
}
