package trash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/staging"
)

func newTestFallback(t *testing.T) *fallbackBackend {
	t.Helper()
	t.Setenv("BROWSEY_UNDO_DIR", t.TempDir())
	logger := logging.NewRoot(logging.LevelDisabled, false)
	area, err := staging.New(logger)
	if err != nil {
		t.Fatalf("unable to create staging area: %s", err)
	}
	if err := area.Cleanup(); err != nil {
		t.Fatalf("unable to prepare staging area: %s", err)
	}
	return newFallbackBackend(area, logger)
}

func TestFallbackBackendMovesFileAndListsIt(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(srcPath, []byte("hello"), 0644); err != nil {
		t.Fatalf("unable to write source: %s", err)
	}

	backend := newTestFallback(t)
	item, err := backend.MoveToTrash(srcPath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if item.OriginalPath != srcPath {
		t.Errorf("expected original path %s, got %s", srcPath, item.OriginalPath)
	}
	if _, statErr := os.Stat(srcPath); !os.IsNotExist(statErr) {
		t.Error("expected source removed after staging")
	}
	if _, statErr := os.Stat(item.TrashedPath); statErr != nil {
		t.Errorf("expected staged content to exist: %s", statErr)
	}

	items, err := backend.List()
	if err != nil {
		t.Fatalf("unexpected error listing: %s", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected exactly the staged item listed, got %+v", items)
	}
}

func TestFallbackBackendRestoreRecreatesOriginal(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(srcPath, []byte("hello"), 0644); err != nil {
		t.Fatalf("unable to write source: %s", err)
	}

	backend := newTestFallback(t)
	item, err := backend.MoveToTrash(srcPath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err := backend.Restore(item); err != nil {
		t.Fatalf("unexpected error restoring: %s", err)
	}

	contents, err := os.ReadFile(srcPath)
	if err != nil {
		t.Fatalf("expected original restored: %s", err)
	}
	if string(contents) != "hello" {
		t.Errorf("expected restored contents to match, got %q", contents)
	}

	items, err := backend.List()
	if err != nil {
		t.Fatalf("unexpected error listing: %s", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no staged items after restore, got %d", len(items))
	}
}

func TestFallbackBackendPurgeRemovesContent(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(srcPath, []byte("hello"), 0644); err != nil {
		t.Fatalf("unable to write source: %s", err)
	}

	backend := newTestFallback(t)
	item, err := backend.MoveToTrash(srcPath)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := backend.Purge(item); err != nil {
		t.Fatalf("unexpected error purging: %s", err)
	}

	items, err := backend.List()
	if err != nil {
		t.Fatalf("unexpected error listing: %s", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no staged items after purge, got %d", len(items))
	}
	if _, statErr := os.Stat(item.TrashedPath); !os.IsNotExist(statErr) {
		t.Error("expected staged content removed after purge")
	}
}

func TestFallbackBackendMovesDirectoryTree(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "project")
	if err := os.MkdirAll(filepath.Join(srcDir, "nested"), 0755); err != nil {
		t.Fatalf("unable to create source tree: %s", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatalf("unable to write a.txt: %s", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "nested", "b.txt"), []byte("b"), 0644); err != nil {
		t.Fatalf("unable to write b.txt: %s", err)
	}

	backend := newTestFallback(t)
	item, err := backend.MoveToTrash(srcDir)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !item.IsDir {
		t.Error("expected item to be marked as a directory")
	}

	if contents, err := os.ReadFile(filepath.Join(item.TrashedPath, "nested", "b.txt")); err != nil || string(contents) != "b" {
		t.Errorf("expected nested file preserved in staged tree, got %q err=%v", contents, err)
	}
	if _, statErr := os.Stat(srcDir); !os.IsNotExist(statErr) {
		t.Error("expected source directory removed after staging")
	}
}
