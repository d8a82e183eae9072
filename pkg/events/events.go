// Package events defines the event sink every long-running or
// state-mutating command emits progress and change notifications through.
// A Sink is the "event sink" referenced throughout the mutation engine
// (copy progress, cancellation, trash-changed, cloud-dir-refreshed); the
// Emitter wraps a Sink with the process Lifecycle's shutdown gate so a
// straggling goroutine never emits after shutdown has begun.
package events

import (
	"github.com/browsey/browsey/pkg/runtime"
)

// Sink receives one event at a time. Implementations must be safe for
// concurrent use, since multiple in-flight tasks may emit concurrently.
type Sink interface {
	Emit(event string, payload interface{}) error
}

// Emitter gates a Sink behind a runtime.Lifecycle: once shutdown has begun,
// every Emit call is silently dropped rather than risk writing to a sink
// that's being torn down alongside the rest of the process.
type Emitter struct {
	sink      Sink
	lifecycle *runtime.Lifecycle
}

// NewEmitter creates an Emitter writing to sink, gated by lifecycle.
func NewEmitter(sink Sink, lifecycle *runtime.Lifecycle) *Emitter {
	return &Emitter{sink: sink, lifecycle: lifecycle}
}

// Emit delivers event/payload through the underlying sink unless the
// process is shutting down. It reports whether the event was actually
// delivered; callers never treat a dropped event as an error, since no
// operation's correctness depends on an event being observed.
func (e *Emitter) Emit(event string, payload interface{}) bool {
	if e == nil || e.sink == nil {
		return false
	}
	return e.lifecycle.EmitIfRunning(event, func() error {
		return e.sink.Emit(event, payload)
	})
}

// ProgressPayload is the payload shape for a task's progress events
// (copy/move byte counters, directory-size estimation, search matches).
type ProgressPayload struct {
	TaskID     string `json:"taskId"`
	BytesDone  int64  `json:"bytesDone,omitempty"`
	BytesTotal int64  `json:"bytesTotal,omitempty"`
	Entry      string `json:"entry,omitempty"`
}

// TrashChangedPayload is the (empty) payload for a "trash-changed" event;
// clients re-list the trash on receipt rather than trust a delta.
type TrashChangedPayload struct{}

// CloudDirRefreshedPayload is the payload for a "cloud-dir-refreshed" event.
type CloudDirRefreshedPayload struct {
	Path       string `json:"path"`
	EntryCount int    `json:"entryCount"`
}
