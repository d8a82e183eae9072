package fspath

import (
	"os"
	"path/filepath"

	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/must"
)

const atomicWriteTemporaryPrefix = ".browsey-atomic-write-"

// WriteFileAtomic writes data to path by way of a temporary file in the same
// directory, swapped into place with a rename. This guarantees that
// concurrent readers (and a crash mid-write) never observe a partially
// written file.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode, logger *logging.Logger) error {
	temp, err := os.CreateTemp(filepath.Dir(path), atomicWriteTemporaryPrefix)
	if err != nil {
		return fromIOError(ErrorCodeMetadataReadFailed, "unable to create temporary file", err)
	}

	if _, err := temp.Write(data); err != nil {
		must.Close(temp, logger)
		must.OSRemove(temp.Name(), logger)
		return fromIOError(ErrorCodeMetadataReadFailed, "unable to write temporary file", err)
	}
	if err := temp.Close(); err != nil {
		must.OSRemove(temp.Name(), logger)
		return fromIOError(ErrorCodeMetadataReadFailed, "unable to close temporary file", err)
	}
	if err := setPermissions(temp.Name(), permissions); err != nil {
		must.OSRemove(temp.Name(), logger)
		return fromIOError(ErrorCodeMetadataReadFailed, "unable to set permissions", err)
	}
	if err := os.Rename(temp.Name(), path); err != nil {
		must.OSRemove(temp.Name(), logger)
		return fromIOError(ErrorCodeMetadataReadFailed, "unable to rename into place", err)
	}
	return nil
}

// IsCrossDeviceError reports whether err (as returned by os.Rename) is due
// to attempting a rename across filesystem boundaries. Callers use this to
// decide whether a "move" must degrade to copy-then-delete.
func IsCrossDeviceError(err error) bool {
	return isCrossDeviceError(err)
}
