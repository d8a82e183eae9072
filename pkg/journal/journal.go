package journal

import "fmt"

// UndoBatch is the user-visible undo unit: one paste, one rename-many, one
// move-to-trash. Its Actions replay in order going Forward and in reverse
// order going Backward (per-action reversibility composes into whole-batch
// reversibility as long as no action depends on another except through a
// shared path, which Apply's per-action dispatch already assumes).
type UndoBatch struct {
	ID       string
	Label    string
	Actions  []TransferAction
	Position int
}

// Apply replays every action in batch in the given direction, in batch
// order for Forward and reverse batch order for Backward, stopping at the
// first failure. The returned error, if any, identifies the action index at
// which replay stopped; the caller (pkg/transfer) is responsible for
// deciding how to surface a partial failure, since a fully atomic undo
// across arbitrary filesystem operations isn't something this package can
// guarantee on its own.
func (b UndoBatch) Apply(direction Direction, ops Ops) error {
	if direction == Forward {
		for i, action := range b.Actions {
			if err := action.Apply(direction, ops); err != nil {
				return fmt.Errorf("action %d: %w", i, err)
			}
		}
		return nil
	}

	for i := len(b.Actions) - 1; i >= 0; i-- {
		if err := b.Actions[i].Apply(direction, ops); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

// Stack is a bounded, in-memory undo/redo history. Pushing a batch once the
// stack is at capacity evicts the oldest entry. Stack is not safe for
// concurrent use without external synchronization; callers serialize
// access through the same command-dispatch path that owns the cancel
// registry and runtime lifecycle.
type Stack struct {
	capacity int
	batches  []UndoBatch
	position int
}

// NewStack creates an empty Stack holding at most capacity batches.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = 1
	}
	return &Stack{capacity: capacity}
}

// Push appends batch as the new top of the undo history, discarding any
// previously-undone (now-redoable) batches beyond the current position and
// evicting the oldest entry if the stack is at capacity.
func (s *Stack) Push(batch UndoBatch) {
	s.batches = s.batches[:s.position]
	s.batches = append(s.batches, batch)
	if len(s.batches) > s.capacity {
		s.batches = s.batches[len(s.batches)-s.capacity:]
	}
	s.position = len(s.batches)
}

// Undo returns the batch to undo (the one just before the current position)
// and moves the position back one step, or (UndoBatch{}, false) if there's
// nothing to undo.
func (s *Stack) Undo() (UndoBatch, bool) {
	if s.position == 0 {
		return UndoBatch{}, false
	}
	s.position--
	return s.batches[s.position], true
}

// Redo returns the batch to redo (the one at the current position) and
// moves the position forward one step, or (UndoBatch{}, false) if there's
// nothing to redo.
func (s *Stack) Redo() (UndoBatch, bool) {
	if s.position >= len(s.batches) {
		return UndoBatch{}, false
	}
	batch := s.batches[s.position]
	s.position++
	return batch, true
}

// Len returns the number of batches currently retained (including redoable
// ones beyond the current position).
func (s *Stack) Len() int {
	return len(s.batches)
}
