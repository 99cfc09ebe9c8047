package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckerExistsAndSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.mp4")
	checker := NewChecker()

	if checker.Exists(path) {
		t.Error("Exists = true for a missing file")
	}
	if checker.Size(path) != 0 {
		t.Error("Size != 0 for a missing file")
	}

	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}

	if !checker.Exists(path) {
		t.Error("Exists = false for an existing file")
	}
	if got := checker.Size(path); got != 5 {
		t.Errorf("Size = %d, want 5", got)
	}
}

func TestCheckerEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	checker := NewChecker()

	if err := checker.EnsureDir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !checker.Exists(dir) {
		t.Error("directory was not created")
	}

	// Idempotent
	if err := checker.EnsureDir(dir); err != nil {
		t.Errorf("unexpected error on existing directory: %v", err)
	}
}

func TestCheckerRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.mp4")
	checker := NewChecker()

	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := checker.Remove(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checker.Exists(path) {
		t.Error("file still exists after Remove")
	}

	// Removing a missing file is fine
	if err := checker.Remove(path); err != nil {
		t.Errorf("unexpected error removing a missing file: %v", err)
	}
}

func TestCheckerMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp4")
	dst := filepath.Join(dir, "dst.mp4")
	checker := NewChecker()

	if err := os.WriteFile(src, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := checker.Move(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checker.Exists(src) {
		t.Error("source still exists after Move")
	}
	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "media" {
		t.Errorf("destination content = %q, want %q", content, "media")
	}
}
