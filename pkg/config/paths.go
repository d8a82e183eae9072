package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName matches the application directory name used in pkg/staging's
// default undo-directory resolution.
const appDirName = "browsey"

// DefaultConfigDir returns the platform-specific directory for
// configuration files, following the same XDG/macOS/Windows conventions
// used by pkg/staging for its default undo directory.
func DefaultConfigDir() (string, error) {
	if custom := os.Getenv("BROWSEY_CONFIG_DIR"); custom != "" {
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", newError(ErrorCodeIO, "unable to determine home directory: %s", err.Error())
	}

	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		return filepath.Join(home, ".config", appDirName), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appDirName), nil
	case "windows":
		base := os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(base, appDirName), nil
	default:
		return filepath.Join(home, ".config", appDirName), nil
	}
}

// DefaultSettingsPath returns the default location of the TOML settings
// file.
func DefaultSettingsPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.toml"), nil
}

// DefaultTunablesPath returns the default location of the YAML engine
// tunables file.
func DefaultTunablesPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tunables.yaml"), nil
}
