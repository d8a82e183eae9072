// Package rclone brokers cloud filesystem primitives through an external
// rclone binary: listing, stat, mkdir, delete, move/copy, and download/
// upload, each mapped to a specific rclone subcommand and argument vector.
package rclone

import "fmt"

// ErrorCode classifies broker failures, matching the taxonomy rclone
// callers (pkg/engine) dispatch on.
type ErrorCode string

const (
	ErrorCodeTimeout              ErrorCode = "timeout"
	ErrorCodeShutdown             ErrorCode = "shutdown"
	ErrorCodeCancelled            ErrorCode = "cancelled"
	ErrorCodeAsyncJobStateUnknown ErrorCode = "async_job_state_unknown"
	ErrorCodeNonZero              ErrorCode = "non_zero"
	ErrorCodeUnsupported          ErrorCode = "unsupported"
	ErrorCodeIO                   ErrorCode = "io"
)

// Error is the typed error every broker call returns on failure.
type Error struct {
	Code    ErrorCode
	Message string

	// ExitCode is the subprocess exit code when Code is ErrorCodeNonZero.
	ExitCode int
	// Stderr is a slot for captured stderr output on ErrorCodeNonZero
	// failures. The runners in cli.go stream stderr to the logger and do
	// not fill it in, so it is empty on every error this package returns.
	Stderr string
}

func (e *Error) Error() string     { return e.Message }
func (e *Error) ErrorCode() string { return string(e.Code) }

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
