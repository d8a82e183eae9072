package process

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

// TestSupervisorRunCompletesNormally tests that Run returns the process'
// exit error (nil for success) when the process exits before cancellation.
func TestSupervisorRunCompletesNormally(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	s := NewSupervisor()
	cmd := exec.Command("sh", "-c", "exit 0")
	if err := s.Run(context.Background(), cmd); err != nil {
		t.Errorf("unexpected error from Run: %s", err)
	}
	if got := s.State(); got != StateExited {
		t.Errorf("expected StateExited, got %v", got)
	}
}

// TestSupervisorRunTerminatesOnCancel tests that Run sends a termination
// signal and transitions through StateCancelling to StateExited when the
// process honors SIGTERM promptly.
func TestSupervisorRunTerminatesOnCancel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	s := &Supervisor{GracePeriod: 2 * time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.Command("sh", "-c", "trap 'exit 0' TERM; sleep 10 & wait")

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, cmd) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if got := s.State(); got != StateExited {
		t.Errorf("expected StateExited, got %v", got)
	}
}

// TestSupervisorRunForceKillsAfterGrace tests that Run force-kills a process
// that ignores SIGTERM once the grace period elapses.
func TestSupervisorRunForceKillsAfterGrace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	s := &Supervisor{GracePeriod: 100 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.Command("sh", "-c", "trap '' TERM; sleep 10")

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, cmd) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after grace period elapsed")
	}

	if got := s.State(); got != StateKilled {
		t.Errorf("expected StateKilled, got %v", got)
	}
}
