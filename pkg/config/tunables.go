package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/logging"
)

// Tunables sizes pkg/engine's worker pool and progress reporting cadence.
// It's split into its own YAML file, separate from the TOML user-facing
// settings in Settings, mirroring the teacher's own split between a
// small global YAML defaults file (pkg/configuration/global in the
// teacher) and the rest of its per-session configuration: most users
// never need to open this file, so it isn't mixed in with the
// preferences a settings UI round-trips on every save.
type Tunables struct {
	// RemoteConcurrency bounds how many simultaneous operations
	// pkg/engine's semaphore pool admits per configured cloud remote.
	RemoteConcurrency int `yaml:"remote_concurrency"`

	// CopyChunkBytes records the byte-copy buffer size. pkg/transfer does
	// not read it; its copies always use the fixed copyChunkSize.
	CopyChunkBytes int `yaml:"copy_chunk_bytes"`

	// ProgressInterval records the minimum spacing between progress events
	// for a single long-running task. Neither pkg/transfer nor pkg/rclone
	// reads it.
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// DefaultTunables mirrors spec.md's stated default of 2 concurrent
// operations per remote, with the chunk size matching pkg/transfer's
// 64 KiB copyChunkSize and a 100 ms progress interval.
func DefaultTunables() Tunables {
	return Tunables{
		RemoteConcurrency: 2,
		CopyChunkBytes:    64 << 10,
		ProgressInterval:  100 * time.Millisecond,
	}
}

// LoadTunables reads a YAML tunables file at path, falling back to
// DefaultTunables when the file doesn't exist. Zero-valued fields in an
// existing file are left as the zero value rather than silently
// resurrected to the default, so an operator who deliberately sets
// remote_concurrency: 0 (to serialize everything) is honored.
func LoadTunables(path string) (Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTunables(), nil
		}
		return Tunables{}, newError(ErrorCodeIO, "unable to read tunables file %s: %s", path, err.Error())
	}

	tunables := DefaultTunables()
	if err := yaml.Unmarshal(data, &tunables); err != nil {
		return Tunables{}, newError(ErrorCodeMalformed, "unable to parse tunables file %s: %s", path, err.Error())
	}
	return tunables, nil
}

// SaveTunables writes tunables to path atomically.
func SaveTunables(path string, tunables Tunables, logger *logging.Logger) error {
	encoded, err := yaml.Marshal(tunables)
	if err != nil {
		return newError(ErrorCodeMalformed, "unable to encode tunables: %s", err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return newError(ErrorCodeIO, "unable to create tunables directory for %s: %s", path, err.Error())
	}
	if err := fspath.WriteFileAtomic(path, encoded, 0600, logger); err != nil {
		return newError(ErrorCodeIO, "unable to write tunables file %s: %s", path, err.Error())
	}
	return nil
}
