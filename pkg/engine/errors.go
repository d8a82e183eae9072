// Package engine wires components A through M into the command surface
// spec.md §6 names: paste_clipboard, rename_entry/rename_many,
// move_to_trash/restore_trash_items/purge_trash_items/list_trash,
// resolve_drop_clipboard_mode, set_hidden, undo/redo, cancel_task,
// list_cloud_remotes/list_cloud_entries/normalize_cloud_path, and
// search_stream. Engine owns the per-remote semaphore pool
// (golang.org/x/sync/semaphore, default weight 2 per spec.md §5) and the
// journal.Stack every mutating command pushes onto.
package engine

import "fmt"

// ErrorCode classifies engine-level failures: everything below this
// package (pkg/transfer, pkg/trash, pkg/rclone, ...) already returns its
// own typed error, so these codes cover only failures that belong to the
// coordination layer itself.
type ErrorCode string

const (
	ErrorCodeInvalidInput    ErrorCode = "invalid_input"
	ErrorCodeUndoUnavailable ErrorCode = "undo_unavailable"
	ErrorCodeRedoUnavailable ErrorCode = "redo_unavailable"
	ErrorCodeTaskNotFound    ErrorCode = "task_not_found"
	ErrorCodeRollbackFailed  ErrorCode = "rollback_failed"
	ErrorCodeShuttingDown    ErrorCode = "shutting_down"
)

// Error is the typed error Engine methods return for coordination-layer
// failures.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string     { return e.Message }
func (e *Error) ErrorCode() string { return string(e.Code) }

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
