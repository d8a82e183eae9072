//go:build !windows

package fspath

import (
	"fmt"
	"os"
	"syscall"
)

// snapshotFromInfo builds a PathSnapshot from POSIX stat data: the device
// number serves as the volume identity and the inode number as the file
// identity, mirroring the st_dev/st_ino fields most filesystem code relies
// on to detect identity and cross-device boundaries.
func snapshotFromInfo(path string, info os.FileInfo) (PathSnapshot, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return PathSnapshot{}, newError(ErrorCodeMetadataReadFailed, "unable to extract raw filesystem information for %s", path)
	}
	return PathSnapshot{
		VolumeID:      fmt.Sprintf("dev:%d", stat.Dev),
		InodeOrFileID: stat.Ino,
		Len:           info.Size(),
		MtimeNS:       info.ModTime().UnixNano(),
		Kind:          kindForInfo(info),
	}, nil
}

// VolumeID returns the volume identity for path, for use in cross-device
// and same-filesystem comparisons (e.g. the drop-mode resolver).
func VolumeID(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", fromIOError(ErrorCodeMetadataReadFailed, "unable to read metadata for "+path, err)
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", newError(ErrorCodeMetadataReadFailed, "unable to extract raw filesystem information for %s", path)
	}
	return fmt.Sprintf("dev:%d", stat.Dev), nil
}
