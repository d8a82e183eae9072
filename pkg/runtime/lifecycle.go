package runtime

import (
	"sync/atomic"
	"time"

	"github.com/browsey/browsey/pkg/logging"
)

// backgroundJobPollInterval is the granularity at which WaitForBackgroundJobs
// polls the refcount. It's the only place this module sleeps in the
// shutdown path.
const backgroundJobPollInterval = 5 * time.Millisecond

// Lifecycle tracks process-wide shutdown state: a single shutting-down flag
// and a refcount of in-flight background jobs. It gates both new task
// admission (via TryEnterBackgroundJob) and progress-event emission (via
// EmitIfRunning).
type Lifecycle struct {
	shuttingDown         atomic.Bool
	activeBackgroundJobs atomic.Int64

	logger *logging.Logger
}

// NewLifecycle creates a Lifecycle that is not yet shutting down.
func NewLifecycle(logger *logging.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// BeginShutdown sets the shutting-down flag. It's idempotent.
func (l *Lifecycle) BeginShutdown() {
	l.shuttingDown.Store(true)
}

// IsShuttingDown reports whether shutdown has begun.
func (l *Lifecycle) IsShuttingDown() bool {
	return l.shuttingDown.Load()
}

// BackgroundGuard is an existence token that decrements the lifecycle's
// background-job refcount when Release is called. Callers must
// `defer guard.Release()`.
type BackgroundGuard struct {
	lifecycle *Lifecycle
	released  atomic.Bool
}

// Release decrements the refcount. It's safe to call more than once; only
// the first call has an effect.
func (g *BackgroundGuard) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.lifecycle.activeBackgroundJobs.Add(-1)
	}
}

// TryEnterBackgroundJob returns a BackgroundGuard if the lifecycle isn't
// shutting down, or (nil, false) otherwise. It double-checks the shutdown
// flag after incrementing the refcount to close the race against a
// concurrent BeginShutdown call: if shutdown raced in between the two
// checks, the increment is immediately undone.
func (l *Lifecycle) TryEnterBackgroundJob() (*BackgroundGuard, bool) {
	if l.IsShuttingDown() {
		return nil, false
	}

	l.activeBackgroundJobs.Add(1)
	if l.IsShuttingDown() {
		l.activeBackgroundJobs.Add(-1)
		return nil, false
	}

	return &BackgroundGuard{lifecycle: l}, true
}

// WaitForBackgroundJobs blocks until the background-job refcount reaches
// zero or timeout elapses, polling at backgroundJobPollInterval.
func (l *Lifecycle) WaitForBackgroundJobs(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for l.activeBackgroundJobs.Load() > 0 {
		if time.Now().After(deadline) {
			return
		}
		time.Sleep(backgroundJobPollInterval)
	}
}

// EmitIfRunning calls emit(event, payload) unless the lifecycle is shutting
// down, in which case the event is silently dropped (logged at debug).
// Progress event delivery is best-effort by design: correctness of the
// underlying filesystem mutation never depends on an event being observed.
func (l *Lifecycle) EmitIfRunning(event string, emit func() error) bool {
	if l.IsShuttingDown() {
		l.logger.Debugf("dropping event %q during shutdown", event)
		return false
	}
	if err := emit(); err != nil {
		l.logger.Debugf("failed to emit event %q: %s", event, err.Error())
		return false
	}
	return true
}
