// Package dropmode decides whether a drag-and-drop operation should copy or
// cut its sources, based on whether every source shares the destination's
// filesystem identity.
package dropmode

import (
	"os"

	"github.com/browsey/browsey/pkg/fspath"
)

// Mode is the resolved drop behavior.
type Mode int

const (
	Cut Mode = iota
	Copy
)

func (m Mode) String() string {
	if m == Copy {
		return "copy"
	}
	return "cut"
}

// ErrorCode classifies drop-mode resolution failures.
type ErrorCode string

const (
	ErrorCodeInvalidInput ErrorCode = "invalid_input"
	ErrorCodeNotDirectory ErrorCode = "not_directory"
)

// Error is the typed error returned by Resolve.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string     { return e.Message }
func (e *Error) ErrorCode() string { return string(e.Code) }

// Resolve decides Copy vs Cut for a drop of paths onto dest. If preferCopy
// is set (e.g. the platform's drag session reported a copy-only operation,
// or Ctrl/Option was held), Copy is returned immediately without touching
// the filesystem. Otherwise dest must be an existing directory, and the
// result is Cut only if every source shares dest's filesystem identity
// (volume); any source on a different volume, or any path whose identity
// can't be determined, forces Copy, since a cross-volume "cut" can't be a
// plain rename.
func Resolve(paths []string, dest string, preferCopy bool) (Mode, error) {
	if preferCopy {
		return Copy, nil
	}
	if len(paths) == 0 {
		return 0, &Error{Code: ErrorCodeInvalidInput, Message: "no source paths provided"}
	}

	destInfo, err := os.Stat(dest)
	if err != nil {
		return 0, &Error{Code: ErrorCodeInvalidInput, Message: "failed to read destination: " + err.Error()}
	}
	if !destInfo.IsDir() {
		return 0, &Error{Code: ErrorCodeNotDirectory, Message: "drop destination must be a directory"}
	}

	destKey, destErr := fspath.VolumeID(dest)

	for _, src := range paths {
		if shouldCopyForDrop(src, destKey, destErr) {
			return Copy, nil
		}
	}
	return Cut, nil
}

// shouldCopyForDrop mirrors the "same volume" test: if either side's
// filesystem identity can't be determined, we fail safe to Copy rather than
// risk treating a cross-volume move as a rename.
func shouldCopyForDrop(src, destKey string, destErr error) bool {
	if destErr != nil {
		return true
	}
	srcKey, err := fspath.VolumeID(src)
	if err != nil {
		return true
	}
	return srcKey != destKey
}
