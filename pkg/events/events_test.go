package events

import (
	"strings"
	"testing"

	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/runtime"
)

func TestEmitterDeliversEventToSink(t *testing.T) {
	recorder := NewRecorder()
	lifecycle := runtime.NewLifecycle(logging.NewRoot(logging.LevelDisabled, false))
	emitter := NewEmitter(recorder, lifecycle)

	if ok := emitter.Emit("trash-changed", TrashChangedPayload{}); !ok {
		t.Fatal("expected Emit to report delivery")
	}

	got := recorder.Events()
	if len(got) != 1 || got[0].Event != "trash-changed" {
		t.Fatalf("expected one trash-changed event, got %+v", got)
	}
}

func TestEmitterDropsEventsAfterShutdown(t *testing.T) {
	recorder := NewRecorder()
	lifecycle := runtime.NewLifecycle(logging.NewRoot(logging.LevelDisabled, false))
	lifecycle.BeginShutdown()
	emitter := NewEmitter(recorder, lifecycle)

	if ok := emitter.Emit("trash-changed", TrashChangedPayload{}); ok {
		t.Error("expected Emit to report no delivery during shutdown")
	}
	if len(recorder.Events()) != 0 {
		t.Error("expected no events recorded after shutdown")
	}
}

func TestJSONLinesSinkWritesOneObjectPerLine(t *testing.T) {
	var buf strings.Builder
	sink := NewJSONLinesSink(&buf)

	if err := sink.Emit("cloud-dir-refreshed", CloudDirRefreshedPayload{Path: "/remote/a", EntryCount: 3}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sink.Emit("trash-changed", TrashChangedPayload{}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"event":"cloud-dir-refreshed"`) {
		t.Errorf("expected first line to reference cloud-dir-refreshed, got %q", lines[0])
	}
	if !strings.Contains(lines[1], `"event":"trash-changed"`) {
		t.Errorf("expected second line to reference trash-changed, got %q", lines[1])
	}
}
