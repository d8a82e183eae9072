//go:build windows

package transfer

import (
	"golang.org/x/sys/windows"
)

// applyHidden toggles the FILE_ATTRIBUTE_HIDDEN bit in place; unlike the
// POSIX convention, Windows hidden state never changes the path. changed
// reports whether the attribute actually flipped, so a no-op toggle isn't
// journaled as though it mutated the file.
func applyHidden(path string, hidden bool) (newPath string, changed bool, err error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", false, err
	}

	attrs, err := windows.GetFileAttributes(pathPtr)
	if err != nil {
		return "", false, err
	}

	isHidden := attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
	if hidden == isHidden {
		return path, false, nil
	}

	if hidden {
		attrs |= windows.FILE_ATTRIBUTE_HIDDEN
	} else {
		attrs &^= windows.FILE_ATTRIBUTE_HIDDEN
	}

	if err := windows.SetFileAttributes(pathPtr, attrs); err != nil {
		return "", false, err
	}
	return path, true, nil
}
