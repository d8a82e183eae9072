// Package trash implements move-to-trash, listing, restore, and purge.
// It prefers the OS-native trash (the XDG Trash spec on Linux and macOS),
// falling back to staging the item under the app's own backup area
// (pkg/staging) when the native trash refuses — e.g. because it's
// unwritable, or on Windows, where the native backend always refuses. (The
// XDG backend handles a volume boundary itself by copying, so a cross-volume
// path alone does not trigger the fallback.) Every mutation emits a
// "trash-changed" event
// through the caller-supplied emitter.
package trash

import "fmt"

// ErrorCode classifies a trash operation failure.
type ErrorCode string

const (
	ErrorCodeInvalidInput ErrorCode = "invalid_input"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeTrashFailed  ErrorCode = "trash_failed"
)

// Error is the typed error returned by this package.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrorCode satisfies apierror.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
