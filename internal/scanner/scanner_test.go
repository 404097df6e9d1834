package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return tempDir
}

func writeFiles(t *testing.T, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestScannerExtensionFilter(t *testing.T) {
	chdirTemp(t)
	writeFiles(t, map[string]string{
		"a.txt":     "hello",
		"b.txt":     "world",
		"README.md": "ignored",
	})

	s := New(Config{Extensions: []string{".txt"}})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestScannerNoExtensionFilterFindsEverything(t *testing.T) {
	chdirTemp(t)
	writeFiles(t, map[string]string{"a.txt": "x", "b.md": "y"})

	s := New(Config{})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

func TestScannerIncludeGlob(t *testing.T) {
	chdirTemp(t)
	writeFiles(t, map[string]string{
		"main.txt":      "x",
		"draft_main.txt": "y",
		"utils.txt":     "z",
	})

	s := New(Config{IncludeGlobs: []string{"draft_*.txt"}})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "draft_main.txt" {
		t.Errorf("expected draft_main.txt, got %s", filepath.Base(files[0]))
	}
}

func TestScannerExcludeGlob(t *testing.T) {
	chdirTemp(t)
	writeFiles(t, map[string]string{"keep.txt": "x", "skip.tmp.txt": "y"})

	s := New(Config{ExcludeGlobs: []string{"*.tmp.txt"}})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.txt" {
		t.Errorf("expected only keep.txt, got %v", files)
	}
}

func TestScannerMaxBytes(t *testing.T) {
	chdirTemp(t)
	large := make([]byte, 1000)
	for i := range large {
		large[i] = 'a'
	}
	writeFiles(t, map[string]string{"small.txt": "hi"})
	if err := os.WriteFile("large.txt", large, 0o644); err != nil {
		t.Fatalf("write large.txt: %v", err)
	}

	s := New(Config{MaxBytes: 100})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "small.txt" {
		t.Errorf("expected only small.txt, got %v", files)
	}
}

func TestScannerDirectorySkipping(t *testing.T) {
	chdirTemp(t)

	for _, dir := range []string{".git", "vendor", "node_modules"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("write in %s: %v", dir, err)
		}
	}
	writeFiles(t, map[string]string{"main.txt": "x"})

	s := New(Config{})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "main.txt" {
		t.Errorf("expected only main.txt, got %v", files)
	}
}

func TestScannerDeduplicatesOverlappingTargets(t *testing.T) {
	chdirTemp(t)
	writeFiles(t, map[string]string{"main.txt": "x"})

	s := New(Config{})
	files, err := s.ScanTargets(context.Background(), []string{".", "main.txt"})
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected deduplication to 1 file, got %d: %v", len(files), files)
	}
}

func TestScannerDefaultsToCurrentDirectory(t *testing.T) {
	chdirTemp(t)
	writeFiles(t, map[string]string{"main.txt": "x"})

	s := New(Config{})
	files, err := s.ScanTargets(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScanTargets: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file from default cwd scan, got %d", len(files))
	}
}
