//go:build windows

package fspath

import (
	"os"

	"github.com/hectane/go-acl"
	"golang.org/x/sys/windows"
)

// setPermissions translates permissions into an NTFS ACL approximating the
// POSIX mode bits, since os.Chmod on Windows only toggles the read-only
// attribute and silently ignores everything else.
func setPermissions(path string, permissions os.FileMode) error {
	return acl.Chmod(path, permissions)
}

func isCrossDeviceError(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	return ok && linkErr.Err == windows.ERROR_NOT_SAME_DEVICE
}
