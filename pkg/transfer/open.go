package transfer

import "github.com/browsey/browsey/pkg/fspath"

// OpenTargetPath resolves path for a read-only "open where this points"
// request: if path is itself a symlink, its single-level target is
// returned; otherwise path is returned unchanged. Unlike every mutating
// operation in this package, this helper is explicitly allowed to follow a
// symlink, since it never writes anything — it exists only so a UI "open
// containing folder" action on a symlink lands somewhere useful. It never
// recurses through a chain of symlinks; a symlink pointing at another
// symlink is returned as-is after one hop.
func OpenTargetPath(path string) (string, error) {
	resolved, err := fspath.Normalize(path, false)
	if err != nil {
		return "", err
	}

	target, err := fspath.ResolveSingleSymlinkHop(resolved)
	if err != nil {
		return "", err
	}
	return target, nil
}
