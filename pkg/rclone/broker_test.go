package rclone

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/browsey/browsey/pkg/logging"
)

// newFakeRcloneBroker writes a fake rclone shell script that dispatches on
// its first argument, and returns a Broker configured to invoke it.
func newFakeRcloneBroker(t *testing.T, script string) *Broker {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "rclone")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("unable to write fake rclone: %s", err)
	}

	return New(path, logging.NewRoot(logging.LevelDisabled, false))
}

const fakeVersionOK = `
if [ "$1" = "version" ]; then
  echo "rclone v1.67.0"
  exit 0
fi
echo '[]'
exit 0
`

func TestEnsureRuntimeReadyAcceptsSupportedVersion(t *testing.T) {
	b := newFakeRcloneBroker(t, fakeVersionOK)
	if err := b.ensureRuntimeReady(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestEnsureRuntimeReadyCachesRejectionForOldVersion(t *testing.T) {
	b := newFakeRcloneBroker(t, `echo "rclone v1.60.0"; exit 0`)

	err1 := b.ensureRuntimeReady()
	if err1 == nil {
		t.Fatal("expected error for unsupported version")
	}
	rcErr, ok := err1.(*Error)
	if !ok || rcErr.Code != ErrorCodeUnsupported {
		t.Fatalf("expected ErrorCodeUnsupported, got %v", err1)
	}

	// Within the backoff window, a second call must return the cached
	// failure without re-spawning (verified indirectly: the script would
	// otherwise still return the same error either way, so we assert the
	// cache entry directly).
	if _, ok := b.probes.check(b.cli.binary); !ok {
		t.Fatal("expected a cached probe entry after a failed probe")
	}
}

func TestListRemotesParsesLongFormat(t *testing.T) {
	script := `
if [ "$1" = "version" ]; then
  echo "rclone v1.67.0"
  exit 0
fi
if [ "$1" = "listremotes" ]; then
  printf 'gdrive:\tdrive\ns3:\ts3\n'
  exit 0
fi
exit 1
`
	b := newFakeRcloneBroker(t, script)
	remotes, err := b.ListRemotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(remotes) != 2 {
		t.Fatalf("expected 2 remotes, got %d", len(remotes))
	}
	if remotes[0].ID != "gdrive" || remotes[0].Provider != "drive" {
		t.Errorf("unexpected first remote: %+v", remotes[0])
	}
}

func TestBrokerShortCircuitsOnShutdown(t *testing.T) {
	b := newFakeRcloneBroker(t, fakeVersionOK)
	b.ShuttingDown = func() bool { return true }

	_, err := b.ListRemotes(context.Background())
	if err == nil {
		t.Fatal("expected shutdown error")
	}
	rcErr, ok := err.(*Error)
	if !ok || rcErr.Code != ErrorCodeShutdown {
		t.Fatalf("expected ErrorCodeShutdown, got %v", err)
	}
}

func TestNonZeroExitIsClassified(t *testing.T) {
	script := `
if [ "$1" = "version" ]; then
  echo "rclone v1.67.0"
  exit 0
fi
echo "boom" 1>&2
exit 3
`
	b := newFakeRcloneBroker(t, script)
	_, err := b.ListRemotes(context.Background())
	if err == nil {
		t.Fatal("expected non-zero exit error")
	}
	rcErr, ok := err.(*Error)
	if !ok || rcErr.Code != ErrorCodeNonZero {
		t.Fatalf("expected ErrorCodeNonZero, got %v", err)
	}
	if rcErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", rcErr.ExitCode)
	}
}
