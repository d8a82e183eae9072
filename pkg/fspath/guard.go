// Package fspath implements the path guard: the sanitization and
// symlink-safety checks every filesystem mutation passes through before
// touching disk, plus the (volume, file-id, len, mtime) snapshot used to
// detect out-of-band changes between check-time and use-time.
package fspath

import (
	"os"
	"path/filepath"
	"strings"
)

// EnsureExistingPathNonsymlink requires path to exist, requires every
// existing component of its prefix to be free of symlinks, and requires
// path itself not to be a symlink. It returns the path's own metadata.
func EnsureExistingPathNonsymlink(path string) (os.FileInfo, error) {
	if err := EnsureNoSymlinkComponentsExistingPrefix(filepath.Dir(path)); err != nil {
		return nil, err
	}

	info, err := os.Lstat(path)
	if err != nil {
		return nil, fromIOError(ErrorCodeMetadataReadFailed, "unable to read metadata for "+path, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, newError(ErrorCodeSymlinkUnsupported, "symlinks are not allowed: %s", path)
	}
	return info, nil
}

// EnsureExistingDirNonsymlink is EnsureExistingPathNonsymlink plus a
// directory-type check.
func EnsureExistingDirNonsymlink(path string) error {
	info, err := EnsureExistingPathNonsymlink(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return newError(ErrorCodeNotDirectory, "not a directory: %s", path)
	}
	return nil
}

// EnsureNoSymlinkComponentsExistingPrefix walks path component by component
// from the root, stopping at the first component that doesn't exist, and
// fails if any existing component along the way is itself a symlink. This
// is the core defense against a symlink swapped into an intermediate
// directory component being used to escape a security boundary (e.g. a
// destination directory the caller believes is contained within another).
func EnsureNoSymlinkComponentsExistingPrefix(path string) error {
	volume := filepath.VolumeName(path)
	rest := strings.TrimPrefix(path[len(volume):], string(filepath.Separator))

	accumulated := volume + string(filepath.Separator)
	for _, segment := range strings.Split(rest, string(filepath.Separator)) {
		if segment == "" {
			continue
		}
		accumulated = filepath.Join(accumulated, segment)

		info, err := os.Lstat(accumulated)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fromIOError(ErrorCodeMetadataReadFailed, "unable to read metadata for "+accumulated, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return newError(ErrorCodeSymlinkUnsupported, "symlinks are not allowed in path: %s", accumulated)
		}
	}
	return nil
}

// RequireNotRoot fails with ErrorCodeRootForbidden if path has no parent
// distinct from itself, or if path's parent does not exist.
func RequireNotRoot(path string) error {
	if IsRoot(path) {
		return newError(ErrorCodeRootForbidden, "operation not permitted on filesystem root: %s", path)
	}
	parent := filepath.Dir(path)
	if _, err := os.Lstat(parent); err != nil {
		if os.IsNotExist(err) {
			return newError(ErrorCodeRootForbidden, "parent does not exist: %s", parent)
		}
		return fromIOError(ErrorCodeMetadataReadFailed, "unable to read metadata for "+parent, err)
	}
	return nil
}

// ResolveSingleSymlinkHop returns the target of path if path is itself a
// symlink (one hop only, not followed recursively), or path unchanged
// otherwise. It exists for read-only "open where this points" UI actions;
// every mutating operation in this module must not call it, since it's the
// one place this package deliberately looks through a symlink.
func ResolveSingleSymlinkHop(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", fromIOError(ErrorCodeNotFound, "unable to read metadata for "+path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", fromIOError(ErrorCodeMetadataReadFailed, "unable to read symlink target for "+path, err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}
