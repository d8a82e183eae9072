package fspath

import (
	"path/filepath"
	"strings"
)

// Normalize sanitizes a user- or configuration-supplied path string into an
// absolute, nul-free, dot-free form. Platform drive/UNC prefixes are
// preserved by filepath.Clean, which understands them natively.
//
// If followSymlinks is true, the result is additionally resolved through any
// symbolic links in its existing prefix (via filepath.EvalSymlinks); the
// caller is responsible for re-validating the resolved path if it then
// crosses a security boundary. If false, the path is cleaned but left
// unresolved, for callers that will separately call
// EnsureNoSymlinkComponentsExistingPrefix.
func Normalize(path string, followSymlinks bool) (string, error) {
	if strings.ContainsRune(path, 0) {
		return "", newError(ErrorCodeInvalidPath, "path contains a nul byte")
	}
	if strings.TrimSpace(path) == "" {
		return "", newError(ErrorCodeInvalidPath, "path is empty")
	}

	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) {
		return "", newError(ErrorCodeInvalidPath, "path is not absolute: %s", path)
	}

	if !followSymlinks {
		return cleaned, nil
	}

	resolved, err := filepath.EvalSymlinks(cleaned)
	if err != nil {
		return "", fromIOError(ErrorCodeInvalidPath, "unable to resolve symlinks", err)
	}
	if !filepath.IsAbs(resolved) {
		return "", newError(ErrorCodeInvalidPath, "resolved path is not absolute: %s", resolved)
	}
	return resolved, nil
}

// IsRoot reports whether path's parent is itself (the filesystem root, or a
// drive/UNC root on Windows). Operating on the root is always forbidden.
func IsRoot(path string) bool {
	parent := filepath.Dir(path)
	return parent == path
}
