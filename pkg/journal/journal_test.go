package journal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/browsey/browsey/pkg/fspath"
)

// recordingOps records every call it receives, succeeding unless a
// specific failure has been injected via failOn.
type recordingOps struct {
	calls  []string
	failOn string
}

func (o *recordingOps) record(call string) error {
	o.calls = append(o.calls, call)
	if call == o.failOn {
		return errors.New("injected failure: " + call)
	}
	return nil
}

func (o *recordingOps) Rename(from, to string) error       { return o.record("rename:" + from + "->" + to) }
func (o *recordingOps) Remove(path string) error            { return o.record("remove:" + path) }
func (o *recordingOps) SetHidden(path string, hidden bool) error {
	if hidden {
		return o.record("hide:" + path)
	}
	return o.record("show:" + path)
}
func (o *recordingOps) Mkdir(path string) error { return o.record("mkdir:" + path) }
func (o *recordingOps) RemoveIfEmpty(path string) error {
	return o.record("rmdir:" + path)
}
func (o *recordingOps) RestoreFromBackup(backup, original string) error {
	return o.record("restore:" + backup + "->" + original)
}

// TestRenameActionReverses tests that a rename action reverses the "from"
// and "to" arguments on backward replay.
func TestRenameActionReverses(t *testing.T) {
	ops := &recordingOps{}
	action := NewRename("/a/old.txt", "/a/new.txt", fspath.PathSnapshot{})

	if err := action.Apply(Forward, ops); err != nil {
		t.Fatalf("forward apply failed: %s", err)
	}
	if err := action.Apply(Backward, ops); err != nil {
		t.Fatalf("backward apply failed: %s", err)
	}

	want := []string{"rename:/a/old.txt->/a/new.txt", "rename:/a/new.txt->/a/old.txt"}
	assertCalls(t, ops.calls, want)
}

// TestCopiedActionForwardIsNoop tests that a Copied action's forward replay
// performs no filesystem operation (the copy already happened when the
// action was recorded) while backward replay removes the created path.
func TestCopiedActionForwardIsNoop(t *testing.T) {
	ops := &recordingOps{}
	action := NewCopied("/a/src.txt", "/b/dst.txt")

	if err := action.Apply(Forward, ops); err != nil {
		t.Fatalf("forward apply failed: %s", err)
	}
	if len(ops.calls) != 0 {
		t.Errorf("expected no calls on forward replay of Copied, got %v", ops.calls)
	}

	if err := action.Apply(Backward, ops); err != nil {
		t.Fatalf("backward apply failed: %s", err)
	}
	assertCalls(t, ops.calls, []string{"remove:/b/dst.txt"})
}

// TestDeletedActionRestoresFromBackup tests that backward replay of a
// Deleted action restores from the staged backup path.
func TestDeletedActionRestoresFromBackup(t *testing.T) {
	ops := &recordingOps{}
	action := NewDeleted("/a/gone.txt", "/staging/bucket/gone.txt", fspath.PathSnapshot{})

	if err := action.Apply(Forward, ops); err != nil {
		t.Fatalf("forward apply failed: %s", err)
	}
	if err := action.Apply(Backward, ops); err != nil {
		t.Fatalf("backward apply failed: %s", err)
	}

	want := []string{"remove:/a/gone.txt", "restore:/staging/bucket/gone.txt->/a/gone.txt"}
	assertCalls(t, ops.calls, want)
}

// TestHiddenToggledActionReverses tests that toggling hidden state reverses
// correctly in both directions.
func TestHiddenToggledActionReverses(t *testing.T) {
	ops := &recordingOps{}
	action := NewHiddenToggled("/a/file.txt", true) // was visible, now hidden

	if err := action.Apply(Forward, ops); err != nil {
		t.Fatalf("forward apply failed: %s", err)
	}
	if err := action.Apply(Backward, ops); err != nil {
		t.Fatalf("backward apply failed: %s", err)
	}
	assertCalls(t, ops.calls, []string{"hide:/a/file.txt", "show:/a/file.txt"})
}

// TestUndoBatchReplaysInReverseOrderBackward tests that a multi-action
// batch replays forward in order and backward in reverse order.
func TestUndoBatchReplaysInReverseOrderBackward(t *testing.T) {
	ops := &recordingOps{}
	batch := UndoBatch{
		ID:    "batch-1",
		Label: "paste 2 items",
		Actions: []TransferAction{
			NewMkDir("/dest/sub"),
			NewCopied("/src/a.txt", "/dest/sub/a.txt"),
		},
	}

	if err := batch.Apply(Forward, ops); err != nil {
		t.Fatalf("forward apply failed: %s", err)
	}
	assertCalls(t, ops.calls, []string{"mkdir:/dest/sub"})

	ops.calls = nil
	if err := batch.Apply(Backward, ops); err != nil {
		t.Fatalf("backward apply failed: %s", err)
	}
	assertCalls(t, ops.calls, []string{"remove:/dest/sub/a.txt", "rmdir:/dest/sub"})
}

// TestUndoBatchStopsAtFirstFailure tests that a failing action halts replay
// and surfaces the error.
func TestUndoBatchStopsAtFirstFailure(t *testing.T) {
	ops := &recordingOps{failOn: "mkdir:/dest/sub"}
	batch := UndoBatch{
		Actions: []TransferAction{
			NewMkDir("/dest/sub"),
			NewMkDir("/dest/sub/nested"),
		},
	}

	if err := batch.Apply(Forward, ops); err == nil {
		t.Fatal("expected failure to propagate")
	}
	assertCalls(t, ops.calls, []string{"mkdir:/dest/sub"})
}

// TestStackPushEvictsOldestAtCapacity tests that pushing beyond capacity
// evicts the oldest batch.
func TestStackPushEvictsOldestAtCapacity(t *testing.T) {
	stack := NewStack(2)
	stack.Push(UndoBatch{ID: "1"})
	stack.Push(UndoBatch{ID: "2"})
	stack.Push(UndoBatch{ID: "3"})

	if stack.Len() != 2 {
		t.Fatalf("expected 2 retained batches, got %d", stack.Len())
	}

	first, ok := stack.Undo()
	if !ok || first.ID != "3" {
		t.Fatalf("expected most recent batch '3', got %+v (ok=%v)", first, ok)
	}
	second, ok := stack.Undo()
	if !ok || second.ID != "2" {
		t.Fatalf("expected batch '2', got %+v (ok=%v)", second, ok)
	}
	if _, ok := stack.Undo(); ok {
		t.Fatal("expected no more batches to undo (batch '1' should have been evicted)")
	}
}

// TestStackUndoRedoRoundTrip tests that a batch undone can be redone, and
// that pushing a new batch after an undo discards redo history.
func TestStackUndoRedoRoundTrip(t *testing.T) {
	stack := NewStack(10)
	stack.Push(UndoBatch{ID: "a"})
	stack.Push(UndoBatch{ID: "b"})

	undone, ok := stack.Undo()
	if !ok || undone.ID != "b" {
		t.Fatalf("expected to undo 'b', got %+v (ok=%v)", undone, ok)
	}

	redone, ok := stack.Redo()
	if !ok || redone.ID != "b" {
		t.Fatalf("expected to redo 'b', got %+v (ok=%v)", redone, ok)
	}

	if _, ok := stack.Redo(); ok {
		t.Fatal("expected no more batches to redo")
	}

	// Undo then push: this should discard the now-stale redo entry.
	stack.Undo()
	stack.Push(UndoBatch{ID: "c"})
	if stack.Len() != 2 {
		t.Fatalf("expected 2 batches after discarding redo history, got %d", stack.Len())
	}
	top, ok := stack.Undo()
	if !ok || top.ID != "c" {
		t.Fatalf("expected top batch 'c', got %+v (ok=%v)", top, ok)
	}
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("call sequence mismatch (-want +got):\n%s", diff)
	}
}
