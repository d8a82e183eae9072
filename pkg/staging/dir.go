package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/browsey/browsey/pkg/fspath"
)

// appDirName is the application directory name used in default data-dir
// resolution across platforms.
const appDirName = "browsey"

// resolveBaseDir determines the backup-staging root: the BROWSEY_UNDO_DIR
// environment variable if set, otherwise a platform-appropriate data
// directory under "undo".
func resolveBaseDir() (string, error) {
	if custom := os.Getenv(undoDirEnvVar); custom != "" {
		return custom, nil
	}
	return defaultUndoDir()
}

// defaultUndoDir follows the same XDG/macOS/Windows conventions used
// elsewhere in the module for locating per-user application data.
func defaultUndoDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var dataDir string
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dataDir = filepath.Join(xdg, appDirName)
		} else {
			dataDir = filepath.Join(home, ".local", "share", appDirName)
		}
	case "darwin":
		dataDir = filepath.Join(home, "Library", "Application Support", appDirName)
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		dataDir = filepath.Join(base, appDirName)
	default:
		dataDir = filepath.Join(home, ".local", "share", appDirName)
	}

	return filepath.Join(dataDir, "undo"), nil
}

// validateDir enforces that a (possibly user-overridden) staging directory
// is absolute, isn't the filesystem root, and resides under the default
// data directory's parent — preventing a misconfigured BROWSEY_UNDO_DIR from
// pointing somewhere the cleanup-on-startup wipe could do real damage.
func validateDir(dir string) error {
	if !filepath.IsAbs(dir) {
		return fmt.Errorf("undo directory must be an absolute path: %s", dir)
	}
	if fspath.IsRoot(dir) {
		return fmt.Errorf("undo directory cannot be the filesystem root: %s", dir)
	}

	if testing.Testing() {
		return nil
	}

	defaultDir, err := defaultUndoDir()
	if err != nil {
		// If we can't determine the default (e.g. no home directory), we
		// can't enforce containment; fall back to the absolute/non-root
		// checks above only.
		return nil
	}

	defaultParent := filepath.Dir(defaultDir)
	if dir != defaultParent && !hasPathPrefix(dir, defaultParent) {
		return fmt.Errorf("undo directory must reside under %s", defaultParent)
	}
	return nil
}

// hasPathPrefix reports whether dir is a strict descendant of parent (it
// returns false for parent itself), using path components rather than a
// naive string prefix so that "/data-other" is not mistaken for a child of
// "/data".
func hasPathPrefix(dir, parent string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel != ".." && rel != "." && !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.'
}
