package staging

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestArea(t *testing.T) *Area {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(undoDirEnvVar, dir)

	area, err := New(nil)
	if err != nil {
		t.Fatalf("unable to construct staging area: %s", err)
	}
	if area.Dir != dir {
		t.Fatalf("expected area rooted at %s, got %s", dir, area.Dir)
	}
	return area
}

// TestTempBackupPathAvoidsCollisions tests that repeated requests for the
// same original path produce distinct, incrementing candidates.
func TestTempBackupPathAvoidsCollisions(t *testing.T) {
	area := newTestArea(t)
	if err := area.Cleanup(); err != nil {
		t.Fatalf("unable to prepare staging area: %s", err)
	}

	original := "/home/user/Documents/report.pdf"

	first, err := area.TempBackupPath(original)
	if err != nil {
		t.Fatalf("unable to compute staging path: %s", err)
	}
	if err := os.WriteFile(first, []byte("x"), 0644); err != nil {
		t.Fatalf("unable to seed staging file: %s", err)
	}

	second, err := area.TempBackupPath(original)
	if err != nil {
		t.Fatalf("unable to compute staging path: %s", err)
	}
	if second == first {
		t.Fatal("expected a distinct path once the first candidate exists")
	}
	if filepath.Base(second) != "report.pdf-1" {
		t.Errorf("expected collision suffix '-1', got %s", filepath.Base(second))
	}
	if filepath.Dir(second) != filepath.Dir(first) {
		t.Error("expected collision candidate to stay in the same bucket")
	}
}

// TestTempBackupPathSameBucketForSameSource tests that repeated calls for
// the same original path land in a stable bucket directory.
func TestTempBackupPathSameBucketForSameSource(t *testing.T) {
	area := newTestArea(t)
	if err := area.Cleanup(); err != nil {
		t.Fatalf("unable to prepare staging area: %s", err)
	}

	original := "/home/user/Pictures/vacation.jpg"
	a, err := area.TempBackupPath(original)
	if err != nil {
		t.Fatalf("unable to compute staging path: %s", err)
	}
	b, err := area.TempBackupPath(original)
	if err != nil {
		t.Fatalf("unable to compute staging path: %s", err)
	}
	if filepath.Dir(a) != filepath.Dir(b) {
		t.Error("expected identical bucket for repeated calls against an unoccupied path")
	}
}

// TestCleanupWipesStaleContents tests that Cleanup removes pre-existing
// entries and leaves the area empty and present.
func TestCleanupWipesStaleContents(t *testing.T) {
	area := newTestArea(t)
	if err := area.Cleanup(); err != nil {
		t.Fatalf("unable to prepare staging area: %s", err)
	}

	stale := filepath.Join(area.Dir, "stale-bucket")
	if err := os.MkdirAll(stale, 0700); err != nil {
		t.Fatalf("unable to seed stale bucket: %s", err)
	}
	if err := os.WriteFile(filepath.Join(stale, "orphan"), []byte("x"), 0644); err != nil {
		t.Fatalf("unable to seed stale file: %s", err)
	}

	if err := area.Cleanup(); err != nil {
		t.Fatalf("cleanup failed: %s", err)
	}

	entries, err := os.ReadDir(area.Dir)
	if err != nil {
		t.Fatalf("unable to list staging area: %s", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty staging area after cleanup, found %d entries", len(entries))
	}
}

// TestNewRejectsRelativeOverride tests that a relative BROWSEY_UNDO_DIR
// override is rejected at construction time.
func TestNewRejectsRelativeOverride(t *testing.T) {
	t.Setenv(undoDirEnvVar, "relative/path")
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for relative undo directory override")
	}
}
