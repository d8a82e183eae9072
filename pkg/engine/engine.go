package engine

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/browsey/browsey/pkg/config"
	"github.com/browsey/browsey/pkg/events"
	"github.com/browsey/browsey/pkg/journal"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/rclone"
	"github.com/browsey/browsey/pkg/runtime"
	"github.com/browsey/browsey/pkg/trash"
	"github.com/browsey/browsey/pkg/transfer"
)

// journalCapacity bounds the in-memory undo/redo history. Persisted state
// layout (spec.md §6) is explicit that undo history never survives a
// restart, so this is purely a within-process memory bound.
const journalCapacity = 64

// Engine is the single entry point the command surface (cmd/browsey, or
// any other frontend) drives. One Engine is created per process and owns
// every piece of mutable shared state named in spec.md §5: the cancel
// registry, the runtime lifecycle, the undo stack, and the rclone broker's
// probe cache (inside Broker itself).
type Engine struct {
	transfer  *transfer.Engine
	trash     *trash.Coordinator
	broker    *rclone.Broker
	search    StarredLookupFactory
	config    config.Reader
	tunables  config.Tunables
	journal   *journal.Stack
	cancels   *runtime.CancelRegistry
	lifecycle *runtime.Lifecycle
	emitter   *events.Emitter
	logger    *logging.Logger

	remoteMu    sync.Mutex
	remoteSemas map[string]*semaphore.Weighted
}

// StarredLookupFactory resolves the starred-paths lookup pkg/search
// decorates results with. The persisted star store lives outside this
// module (spec.md's settings/bookmarks/stars/recents store), so Engine
// only knows how to ask for one; a nil factory falls back to
// search.NoStars.
type StarredLookupFactory func() interface {
	IsStarred(path string) bool
}

// Dependencies bundles every already-constructed collaborator Engine
// wires together. Each is required except Emitter and Search (both may be
// nil: Emitter makes every Emit a no-op per pkg/events' own nil-safety,
// and a nil Search factory falls back to no starred decoration).
type Dependencies struct {
	Transfer  *transfer.Engine
	Trash     *trash.Coordinator
	Broker    *rclone.Broker
	Config    config.Reader
	Tunables  config.Tunables
	Cancels   *runtime.CancelRegistry
	Lifecycle *runtime.Lifecycle
	Emitter   *events.Emitter
	Logger    *logging.Logger
	Search    StarredLookupFactory
}

// New assembles an Engine from deps.
func New(deps Dependencies) *Engine {
	return &Engine{
		transfer:    deps.Transfer,
		trash:       deps.Trash,
		broker:      deps.Broker,
		search:      deps.Search,
		config:      deps.Config,
		tunables:    deps.Tunables,
		journal:     journal.NewStack(journalCapacity),
		cancels:     deps.Cancels,
		lifecycle:   deps.Lifecycle,
		emitter:     deps.Emitter,
		logger:      deps.Logger,
		remoteSemas: make(map[string]*semaphore.Weighted),
	}
}

// remoteSemaphore returns the semaphore bounding concurrent rclone
// invocations against remote, creating it on first use with the
// configured (or default) per-remote concurrency.
func (e *Engine) remoteSemaphore(remote string) *semaphore.Weighted {
	e.remoteMu.Lock()
	defer e.remoteMu.Unlock()

	if sem, ok := e.remoteSemas[remote]; ok {
		return sem
	}

	weight := int64(e.tunables.RemoteConcurrency)
	if weight <= 0 {
		weight = 1
	}
	sem := semaphore.NewWeighted(weight)
	e.remoteSemas[remote] = sem
	return sem
}

// Settings returns the current persisted settings, so callers (cmd/browsey)
// don't need to hold their own reference to the config.Reader passed in at
// construction time.
func (e *Engine) Settings() config.Settings {
	return e.config.Settings()
}

// SetDefaultView persists the user's preferred default listing view.
func (e *Engine) SetDefaultView(view config.View) error {
	return e.config.SetDefaultView(view)
}

func (e *Engine) emit(event string, payload interface{}) {
	if e.emitter != nil {
		e.emitter.Emit(event, payload)
	}
}

// checkNotShuttingDown rejects starting a new long-running task once
// shutdown has begun, mirroring runtime.begin_shutdown()'s role in
// spec.md §5's cancellation model: in-flight work drains via the cancel
// registry, but no new work should be admitted once draining has started.
func (e *Engine) checkNotShuttingDown() error {
	if e.lifecycle != nil && e.lifecycle.IsShuttingDown() {
		return newError(ErrorCodeShuttingDown, "the application is shutting down")
	}
	return nil
}
