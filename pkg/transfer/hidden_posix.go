//go:build !windows

package transfer

import (
	"os"
	"path/filepath"
	"strings"
)

// applyHidden toggles Unix hidden-file convention by prepending or
// stripping a leading "." via rename, returning the path's new name and
// whether a rename actually happened (path was already in the requested
// state is reported as unchanged, not a no-op rename to itself).
func applyHidden(path string, hidden bool) (newPath string, changed bool, err error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	isHidden := strings.HasPrefix(name, ".")

	if hidden == isHidden {
		return path, false, nil
	}

	var newName string
	if hidden {
		newName = "." + name
	} else {
		newName = strings.TrimPrefix(name, ".")
	}

	newPath = filepath.Join(dir, newName)
	if err := os.Rename(path, newPath); err != nil {
		return "", false, err
	}
	return newPath, true, nil
}
