package runtime

import "testing"

// TestCancelSignalsRegisteredTask tests that Cancel flips the token for a
// registered task and returns true.
func TestCancelSignalsRegisteredTask(t *testing.T) {
	registry := NewCancelRegistry()
	guard, err := registry.Register("task-1")
	if err != nil {
		t.Fatalf("unable to register: %s", err)
	}
	defer guard.Release()

	if guard.Token().Load() {
		t.Fatal("expected token to start uncancelled")
	}
	if !registry.Cancel("task-1") {
		t.Fatal("expected Cancel to find the registered task")
	}
	if !guard.Token().Load() {
		t.Error("expected token to be cancelled")
	}
}

// TestCancelUnknownTaskReturnsFalse tests that cancelling a nonexistent id
// is reported, not swallowed.
func TestCancelUnknownTaskReturnsFalse(t *testing.T) {
	registry := NewCancelRegistry()
	if registry.Cancel("nonexistent") {
		t.Error("expected Cancel to report no task found")
	}
}

// TestReleaseRemovesEntry tests that Release deregisters the task, so a
// later Cancel call for the same id fails.
func TestReleaseRemovesEntry(t *testing.T) {
	registry := NewCancelRegistry()
	guard, err := registry.Register("task-2")
	if err != nil {
		t.Fatalf("unable to register: %s", err)
	}
	guard.Release()

	if registry.Cancel("task-2") {
		t.Error("expected Cancel to fail after Release")
	}
}

// TestCancelAllSignalsEveryTask tests that CancelAll flips every registered
// token and returns the count signaled.
func TestCancelAllSignalsEveryTask(t *testing.T) {
	registry := NewCancelRegistry()
	guardA, _ := registry.Register("a")
	guardB, _ := registry.Register("b")
	defer guardA.Release()
	defer guardB.Release()

	if n := registry.CancelAll(); n != 2 {
		t.Errorf("expected 2 tasks signaled, got %d", n)
	}
	if !guardA.Token().Load() || !guardB.Token().Load() {
		t.Error("expected both tokens to be cancelled")
	}
}

// TestRegisterReplacesExistingEntry tests that a duplicate Register call
// replaces the previous flag under the same id.
func TestRegisterReplacesExistingEntry(t *testing.T) {
	registry := NewCancelRegistry()
	first, _ := registry.Register("dup")
	second, _ := registry.Register("dup")

	registry.Cancel("dup")
	if !second.Token().Load() {
		t.Error("expected the replacement guard's token to be cancelled")
	}
	if first.Token().Load() {
		t.Error("expected the superseded guard's token to remain its own, untouched by Cancel")
	}
}
