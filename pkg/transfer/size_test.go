package transfer

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestEstimateSizeSumsAcrossMultipleSources(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	writeFile(t, filepath.Join(dirA, "one.bin"), "12345")
	nested := filepath.Join(dirA, "nested")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatalf("unable to create nested dir: %s", err)
	}
	writeFile(t, filepath.Join(nested, "two.bin"), "1234567890")
	writeFile(t, filepath.Join(dirB, "three.bin"), "12")

	total, err := EstimateSize([]string{dirA, dirB}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if total != 5+10+2 {
		t.Errorf("expected total of 17 bytes, got %d", total)
	}
}

func TestEstimateSizeCancelledStopsWithError(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(dir, "f"+string(rune('a'+i))+".bin"), "data")
	}

	cancel := &atomic.Bool{}
	cancel.Store(true)

	_, err := EstimateSize([]string{dir}, cancel)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	tErr, ok := err.(*Error)
	if !ok || tErr.Code != ErrorCodeCancelled {
		t.Fatalf("expected ErrorCodeCancelled, got %v", err)
	}
}
