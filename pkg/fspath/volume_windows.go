//go:build windows

package fspath

import (
	"path/filepath"
	"strings"
)

// lowercaseVolumeName returns path's lowercased drive letter or UNC share
// prefix (e.g. "c:" or `\\server\share`), the cheapest stable identity for
// same-volume comparisons such as the drop-mode resolver, which must avoid
// opening a handle on a destination that may not exist yet.
func lowercaseVolumeName(path string) string {
	return strings.ToLower(filepath.VolumeName(path))
}
