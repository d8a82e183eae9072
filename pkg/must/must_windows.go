//go:build windows

package must

import (
	"github.com/browsey/browsey/pkg/logging"
	"golang.org/x/sys/windows"
)

// CloseWindowsHandle closes wh, logging a warning if it fails.
func CloseWindowsHandle(wh windows.Handle, logger *logging.Logger) {
	if err := windows.CloseHandle(wh); err != nil {
		logger.Warnf("unable to close handle %d: %s", wh, err.Error())
	}
}
