// Package apierror is the single place where a typed Go error is downgraded
// into the {code, message} pair the UI shell and CLI JSON event sink expect.
// Every package below the command boundary returns its own typed errors
// (wrapped with github.com/pkg/errors where no richer code is warranted);
// apierror is the only consumer that needs to know how to turn any of them
// into wire shape.
package apierror

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// CodedError is implemented by every package-level typed error in the
// module (fspath.Error, runtime.Error, rclone.Error, and so on). Flatten
// uses it to recover a stable code string without importing every such
// package.
type CodedError interface {
	error
	ErrorCode() string
}

// Error is the flattened, JSON-serializable wire shape returned at the
// command boundary.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e Error) Error() string { return e.Message }

// MarshalJSON is implemented explicitly (rather than relying on the default
// struct tags alone) so that Error satisfies json.Marshaler directly,
// letting callers pass an *Error to something that only checks for that
// interface rather than reflecting over struct tags.
func (e Error) MarshalJSON() ([]byte, error) {
	type wire Error
	return json.Marshal(wire(e))
}

const (
	CodeUnknown            = "unknown_error"
	CodeNotFound           = "not_found"
	CodePermissionDenied   = "permission_denied"
	CodeAlreadyExists      = "already_exists"
	CodeInvalidInput       = "invalid_input"
	CodeReadOnlyFilesystem = "read_only_filesystem"
)

// Flatten converts any error into the wire {code,message} shape. If err (or
// something it wraps) implements CodedError, that code is used verbatim.
// Otherwise the error is classified as an IO error if possible, falling back
// to CodeUnknown.
func Flatten(err error) Error {
	if err == nil {
		return Error{Code: "", Message: ""}
	}

	var coded CodedError
	if errors.As(err, &coded) {
		return Error{Code: coded.ErrorCode(), Message: coded.Error()}
	}

	return Error{Code: classifyIOError(err), Message: err.Error()}
}

// classifyIOError maps a raw, unwrapped error (typically from the os or io
// packages) onto one of the stable wire codes, mirroring the IO error
// classification used throughout the Rust implementation this module was
// distilled from.
func classifyIOError(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrPermission) || errors.Is(err, os.ErrPermission):
		return CodePermissionDenied
	case errors.Is(err, fs.ErrExist) || errors.Is(err, os.ErrExist):
		return CodeAlreadyExists
	case errors.Is(err, fs.ErrInvalid) || errors.Is(err, os.ErrInvalid):
		return CodeInvalidInput
	case errors.Is(err, syscall.EROFS):
		return CodeReadOnlyFilesystem
	default:
		return CodeUnknown
	}
}
