package rclone

import (
	"sync"
	"time"
)

// MinimumVersion is the lowest rclone version the broker will operate
// against; the original implementation's choice of 1.67.0 is carried
// forward unchanged since it tracks features (lsjson --stat, moveto/copyto
// semantics) the broker's command taxonomy depends on.
var MinimumVersion = [3]uint64{1, 67, 0}

// ProbeFailureBackoff is how long a failed version probe (or a failed
// startup spawn) is cached before the broker will try spawning the binary
// again. Kept short so a misconfigured or momentarily-unavailable binary
// doesn't cause a user-visible stall, but long enough to prevent a tight
// spawn loop from a chatty caller.
var ProbeFailureBackoff = 5 * time.Second

type probeCacheEntry struct {
	ready     bool
	err       *Error
	retryAt   time.Time
}

// probeCache caches the outcome of the version probe (and, by extension,
// the startup cooldown after a spawn failure) per resolved binary path, so
// a burst of calls against a known-broken binary doesn't spawn a subprocess
// per call.
type probeCache struct {
	mu      sync.Mutex
	entries map[string]probeCacheEntry
}

func newProbeCache() *probeCache {
	return &probeCache{entries: make(map[string]probeCacheEntry)}
}

// check returns a cached Ready (nil error) or a cached Failed error still
// within its backoff window. ok is false if there's no usable cache entry
// and the caller must probe.
func (c *probeCache) check(binary string) (err *Error, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[binary]
	if !found {
		return nil, false
	}
	if entry.ready {
		return nil, true
	}
	if time.Now().Before(entry.retryAt) {
		return entry.err, true
	}
	return nil, false
}

func (c *probeCache) recordReady(binary string) {
	c.mu.Lock()
	c.entries[binary] = probeCacheEntry{ready: true}
	c.mu.Unlock()
}

func (c *probeCache) recordFailure(binary string, err *Error) {
	c.mu.Lock()
	c.entries[binary] = probeCacheEntry{err: err, retryAt: time.Now().Add(ProbeFailureBackoff)}
	c.mu.Unlock()
}

// reset clears every cached entry. It is unexported and nothing in the
// package calls it at present.
func (c *probeCache) reset() {
	c.mu.Lock()
	c.entries = make(map[string]probeCacheEntry)
	c.mu.Unlock()
}

// ensureRuntimeReady spawns `rclone version` if there's no usable cache
// entry for b's binary, validates the reported version against
// MinimumVersion, and caches the outcome.
func (b *Broker) ensureRuntimeReady() error {
	binary := b.cli.binary
	if err, ok := b.probes.check(binary); ok {
		if err != nil {
			return err
		}
		return nil
	}

	output, runErr := b.cli.runCaptureText(nil, "version")
	if runErr != nil {
		apiErr := toError(runErr)
		b.probes.recordFailure(binary, apiErr)
		return apiErr
	}

	version, ok := parseVersionStdout(output)
	if !ok {
		err := newError(ErrorCodeUnsupported, "unexpected `rclone version` output; cannot verify rclone runtime")
		b.probes.recordFailure(binary, err)
		return err
	}
	triplet, ok := parseVersionTriplet(version)
	if !ok {
		err := newError(ErrorCodeUnsupported, "unsupported rclone version format: %s", version)
		b.probes.recordFailure(binary, err)
		return err
	}
	if versionLess(triplet, MinimumVersion) {
		err := newError(ErrorCodeUnsupported,
			"rclone v%s is too old; Browsey requires rclone v%d.%d.%d or newer",
			version, MinimumVersion[0], MinimumVersion[1], MinimumVersion[2])
		b.probes.recordFailure(binary, err)
		return err
	}

	b.probes.recordReady(binary)
	return nil
}
