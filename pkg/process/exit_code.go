//go:build !plan9

package process

import (
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
)

const (
	// posixShellInvalidCommandExitCode is the exit code returned by most POSIX
	// shells when the provided command is invalid (e.g. a file lacking
	// executable permission).
	posixShellInvalidCommandExitCode = 126

	// posixShellCommandNotFoundExitCode is the exit code returned by most
	// POSIX shells when the provided command isn't found.
	posixShellCommandNotFoundExitCode = 127
)

// ExitCodeForError extracts the process exit code from an error returned by
// exec.Cmd.Run/Wait. It requires the error to be a non-nil *exec.ExitError.
func ExitCodeForError(err error) (int, error) {
	if err == nil {
		return 0, errors.New("nil error provided")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return 0, errors.New("error is not an exec.ExitError")
	}
	waitStatus, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return 0, errors.New("unable to access wait status")
	}
	return waitStatus.ExitStatus(), nil
}

// IsPOSIXShellInvalidCommand returns whether or not an error represents an
// "invalid command" error from a POSIX shell.
func IsPOSIXShellInvalidCommand(err error) bool {
	code, extractErr := ExitCodeForError(err)
	return extractErr == nil && code == posixShellInvalidCommandExitCode
}

// IsPOSIXShellCommandNotFound returns whether or not an error represents a
// "command not found" error from a POSIX shell.
func IsPOSIXShellCommandNotFound(err error) bool {
	code, extractErr := ExitCodeForError(err)
	return extractErr == nil && code == posixShellCommandNotFoundExitCode
}
