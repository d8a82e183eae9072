package fspath

import "os"

// Kind classifies the filesystem entry a PathSnapshot describes.
type Kind string

const (
	KindFile  Kind = "file"
	KindDir   Kind = "dir"
	KindOther Kind = "other"
)

// PathSnapshot captures enough filesystem identity to detect whether a path
// has changed out from under the engine between a check and its later use.
// Two snapshots are equal only when every field matches exactly; MtimeNS is
// compared at whole-nanosecond precision.
type PathSnapshot struct {
	VolumeID      string
	InodeOrFileID uint64
	Len           int64
	MtimeNS       int64
	Kind          Kind
}

// Equal reports whether two snapshots describe the identical filesystem
// state.
func (s PathSnapshot) Equal(other PathSnapshot) bool {
	return s == other
}

func kindForInfo(info os.FileInfo) Kind {
	switch {
	case info.IsDir():
		return KindDir
	case info.Mode().IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Snapshot reads path's current metadata and builds a PathSnapshot from it,
// enforcing the same symlink-free-prefix guarantee as
// EnsureExistingPathNonsymlink.
func Snapshot(path string) (PathSnapshot, error) {
	info, err := EnsureExistingPathNonsymlink(path)
	if err != nil {
		return PathSnapshot{}, err
	}
	return snapshotFromInfo(path, info)
}

// AssertSnapshot re-reads path's metadata and fails with
// ErrorCodeSnapshotMismatch if it no longer matches expected.
func AssertSnapshot(path string, expected PathSnapshot) error {
	current, err := Snapshot(path)
	if err != nil {
		return err
	}
	if !current.Equal(expected) {
		return newError(ErrorCodeSnapshotMismatch, "path changed since it was last checked: %s", path)
	}
	return nil
}
