// Package must provides best-effort wrappers around operations whose errors
// are not actionable at the call site (cleanup on an already-failing path,
// closing a file we're about to discard) but are still worth a log line.
package must

import (
	"io"
	"os"

	"github.com/browsey/browsey/pkg/logging"
)

// Close closes c, logging a warning if it fails.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// OSRemove removes name, logging a warning if it fails.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}

// OSRemoveAll removes the directory tree rooted at name, logging a warning on
// failure.
func OSRemoveAll(name string, logger *logging.Logger) {
	if err := os.RemoveAll(name); err != nil {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}

// Unlock releases locker, logging a warning if it fails.
func Unlock(locker interface{ Unlock() error }, logger *logging.Logger) {
	if err := locker.Unlock(); err != nil {
		logger.Warnf("unable to unlock: %s", err.Error())
	}
}

// Kill terminates s, logging a warning if it fails.
func Kill(s interface{ Kill() error }, logger *logging.Logger) {
	if err := s.Kill(); err != nil {
		logger.Warnf("unable to kill: %s", err.Error())
	}
}
