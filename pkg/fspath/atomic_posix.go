//go:build !windows

package fspath

import (
	"os"
	"syscall"
)

// setPermissions applies permissions directly via os.Chmod, which maps onto
// POSIX mode bits as expected.
func setPermissions(path string, permissions os.FileMode) error {
	return os.Chmod(path, permissions)
}

func isCrossDeviceError(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	return ok && linkErr.Err == syscall.EXDEV
}
