// Package staging manages the backup-staging area: the process-owned
// directory that receives a copy of a file immediately before it is
// destroyed, so that a Deleted journal entry's backward replay can restore
// it. The area is wiped and recreated at startup, since undo history lives
// only in process memory and a stale staging directory from a previous run
// can never be referenced by anything.
package staging

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/browsey/browsey/pkg/logging"
)

// undoDirEnvVar overrides the default backup-staging location. It exists
// primarily for tests and for users running multiple isolated instances
// against the same home directory.
const undoDirEnvVar = "BROWSEY_UNDO_DIR"

// Area manages a single backup-staging directory rooted at Dir.
type Area struct {
	// Dir is the root of the staging area.
	Dir string

	logger *logging.Logger
}

// New creates an Area rooted at the default or environment-overridden
// location, without touching the filesystem. Call Cleanup to wipe and
// recreate it at startup.
func New(logger *logging.Logger) (*Area, error) {
	dir, err := resolveBaseDir()
	if err != nil {
		return nil, err
	}
	if err := validateDir(dir); err != nil {
		return nil, err
	}
	return &Area{Dir: dir, logger: logger}, nil
}

// Cleanup wipes any existing contents of the staging area and recreates it
// empty. It's called once at process startup; undo history never survives
// a restart, so anything found here is orphaned.
func (a *Area) Cleanup() error {
	if entries, err := os.ReadDir(a.Dir); err == nil {
		for _, entry := range entries {
			path := filepath.Join(a.Dir, entry.Name())
			if entry.IsDir() {
				if err := os.RemoveAll(path); err != nil {
					a.logger.Warnf("unable to remove stale staging entry %s: %s", path, err.Error())
				}
			} else if err := os.Remove(path); err != nil {
				a.logger.Warnf("unable to remove stale staging entry %s: %s", path, err.Error())
			}
		}
	}
	return os.MkdirAll(a.Dir, 0700)
}

// TempBackupPath computes a staging destination for original, a path about
// to be destroyed. It buckets entries by a hash of the full source path
// (so repeated backups of the same path share one short-named bucket) and
// resolves filename collisions within a bucket by
// appending an incrementing "-N" suffix, mirroring the scheme used for
// content-addressed staging but keyed on path identity rather than a
// content digest (the backup is a point-in-time copy, not a sync
// fingerprint). The bucket directory is created if it doesn't already
// exist; the returned path itself is never created by this call.
func (a *Area) TempBackupPath(original string) (string, error) {
	bucket := bucketFor(original)
	bucketDir := filepath.Join(a.Dir, bucket)
	if err := os.MkdirAll(bucketDir, 0700); err != nil {
		return "", fmt.Errorf("unable to create staging bucket: %w", err)
	}

	name := filepath.Base(original)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "item"
	}

	candidate := filepath.Join(bucketDir, name)
	for index := 1; ; index++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("unable to probe staging candidate: %w", err)
		}
		candidate = filepath.Join(bucketDir, fmt.Sprintf("%s-%d", name, index))
	}
}

// bucketFor hashes a path's full string to a short, stable bucket name.
func bucketFor(path string) string {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(path))
	return fmt.Sprintf("%016x", hasher.Sum64())
}
