// Package config reads the application's persisted settings: the
// configured rclone binary path, UI preferences such as the default view
// and column widths, and the engine tunables (per-remote concurrency,
// byte-copy chunk size, progress cadence) that size pkg/engine's worker
// pool. Settings are split across two files the way the teacher splits
// its own per-session configuration from its global YAML defaults: a
// small TOML file for user-editable preferences, and a YAML file for the
// engine tunables most users never need to touch.
package config

import "fmt"

// ErrorCode classifies config failures.
type ErrorCode string

const (
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInvalidInput ErrorCode = "invalid_input"
	ErrorCodeIO           ErrorCode = "io"
	ErrorCodeMalformed    ErrorCode = "malformed"
)

// Error is the typed error every config operation returns on failure.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string     { return e.Message }
func (e *Error) ErrorCode() string { return string(e.Code) }

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
