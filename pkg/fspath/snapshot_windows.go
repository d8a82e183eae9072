//go:build windows

package fspath

import (
	"fmt"
	"os"

	winio "github.com/Microsoft/go-winio"
	"golang.org/x/sys/windows"
)

// snapshotFromInfo builds a PathSnapshot from Windows file information. The
// volume serial number plus file index together serve the role st_dev/
// st_ino play on POSIX.
func snapshotFromInfo(path string, info os.FileInfo) (PathSnapshot, error) {
	volumeSerial, fileIndex, err := queryByHandleInfo(path)
	if err != nil {
		return PathSnapshot{}, err
	}
	return PathSnapshot{
		VolumeID:      fmt.Sprintf("vol:%d", volumeSerial),
		InodeOrFileID: fileIndex,
		Len:           info.Size(),
		MtimeNS:       info.ModTime().UnixNano(),
		Kind:          kindForInfo(info),
	}, nil
}

// VolumeID returns the volume identity for path. Unlike snapshotFromInfo,
// this uses the lowercased drive letter (or UNC share) prefix rather than
// opening a handle, since the drop-mode resolver calls it on paths that may
// not exist yet (a prospective drop destination).
func VolumeID(path string) (string, error) {
	root := windowsVolumeNamePrefix(path)
	if root == "" {
		return "", newError(ErrorCodeInvalidPath, "unable to determine volume for %s", path)
	}
	return "drive:" + root, nil
}

func windowsVolumeNamePrefix(path string) string {
	return lowercaseVolumeName(path)
}

// queryByHandleInfo opens path with FILE_FLAG_BACKUP_SEMANTICS, which lets a
// directory (or a file an ACL would otherwise deny read access to) be
// snapshotted the same way staging's pre-delete backup needs to read it.
// That flag only has teeth if the process holds SeBackupPrivilege, which
// isn't enabled by default — so the open is wrapped in
// winio.RunWithPrivilege the same way the underlying CreateFile call
// expects a backup-aware caller to.
func queryByHandleInfo(path string) (serial uint32, fileIndex uint64, err error) {
	runErr := winio.RunWithPrivilege(winio.SeBackupPrivilege, func() error {
		serial, fileIndex, err = queryByHandleInfoUnprivileged(path)
		return err
	})
	if runErr != nil && err == nil {
		err = runErr
	}
	return serial, fileIndex, err
}

func queryByHandleInfoUnprivileged(path string) (serial uint32, fileIndex uint64, err error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, newError(ErrorCodeInvalidPath, "unable to convert path: %s", path)
	}

	handle, err := windows.CreateFile(
		pathPtr,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return 0, 0, fromIOError(ErrorCodeMetadataReadFailed, "unable to open handle for "+path, err)
	}
	defer windows.CloseHandle(handle)

	var byHandle windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &byHandle); err != nil {
		return 0, 0, fromIOError(ErrorCodeMetadataReadFailed, "unable to query file information for "+path, err)
	}

	fileIndex = uint64(byHandle.FileIndexHigh)<<32 | uint64(byHandle.FileIndexLow)
	return byHandle.VolumeSerialNumber, fileIndex, nil
}
