package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/browsey/browsey/pkg/config"
	"github.com/browsey/browsey/pkg/events"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/runtime"
	"github.com/browsey/browsey/pkg/search"
	"github.com/browsey/browsey/pkg/staging"
	"github.com/browsey/browsey/pkg/trash"
	"github.com/browsey/browsey/pkg/transfer"
)

func newTestEngine(t *testing.T) (*Engine, *events.Recorder) {
	t.Helper()
	t.Setenv("BROWSEY_UNDO_DIR", t.TempDir())
	t.Setenv("BROWSEY_XDG_TRASH_DIR", t.TempDir())

	logger := logging.NewRoot(logging.LevelDisabled, false)
	area, err := staging.New(logger)
	require.NoError(t, err)
	require.NoError(t, area.Cleanup())

	recorder := events.NewRecorder()
	lifecycle := runtime.NewLifecycle(logger)
	emitter := events.NewEmitter(recorder, lifecycle)

	e := New(Dependencies{
		Transfer:  transfer.New(area, logger),
		Trash:     trash.New(area, logger, emitter),
		Config:    config.NewStatic(config.Settings{}),
		Tunables:  config.DefaultTunables(),
		Cancels:   runtime.NewCancelRegistry(),
		Lifecycle: lifecycle,
		Emitter:   emitter,
		Logger:    logger,
	})
	return e, recorder
}

func TestEnginePasteClipboardCopiesAndPushesUndo(t *testing.T) {
	e, _ := newTestEngine(t)

	srcDir := t.TempDir()
	destDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "a.txt")
	require.NoError(t, os.WriteFile(srcFile, []byte("hello"), 0644))

	result, err := e.PasteClipboard([]string{srcFile}, destDir, transfer.Copy, transfer.Skip, "task-1", nil)
	require.NoError(t, err)
	require.Len(t, result.CreatedPaths, 1)

	contents, err := os.ReadFile(result.CreatedPaths[0])
	require.NoError(t, err)
	assert.Equal(t, "hello", string(contents))

	// Original still present since this was a copy.
	_, err = os.Stat(srcFile)
	assert.NoError(t, err)
}

func TestEngineRenameEntryProducesFinalPath(t *testing.T) {
	e, _ := newTestEngine(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "old.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	result, err := e.RenameEntry(src, "new.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "new.txt"), result.FinalPath)
}

func TestEngineRenameManyProducesJoinedFinalPaths(t *testing.T) {
	e, _ := newTestEngine(t)

	dir := t.TempDir()
	srcA := filepath.Join(dir, "a.txt")
	srcB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(srcA, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(srcB, []byte("y"), 0644))

	result, err := e.RenameMany([]transfer.RenameRequest{
		{Source: srcA, NewName: "a2.txt"},
		{Source: srcB, NewName: "b2.txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a2.txt"), filepath.Join(dir, "b2.txt")}, result.FinalPaths)
}

func TestEngineUndoReversesLastPaste(t *testing.T) {
	e, _ := newTestEngine(t)

	srcDir := t.TempDir()
	destDir := t.TempDir()
	srcFile := filepath.Join(srcDir, "a.txt")
	require.NoError(t, os.WriteFile(srcFile, []byte("hello"), 0644))

	_, err := e.PasteClipboard([]string{srcFile}, destDir, transfer.Cut, transfer.Skip, "task-1", nil)
	require.NoError(t, err)

	undoResult, err := e.Undo()
	require.NoError(t, err)
	assert.False(t, undoResult.Partial)

	// The cut source should be back where it started.
	_, err = os.Stat(srcFile)
	assert.NoError(t, err)
}

func TestEngineUndoUnavailableWhenJournalEmpty(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Undo()
	require.Error(t, err)

	var engineErr *Error
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, ErrorCodeUndoUnavailable, engineErr.Code)
}

func TestEngineMoveToTrashEmitsChangeAndIsUndoable(t *testing.T) {
	e, recorder := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	require.NoError(t, e.MoveToTrash([]string{path}))

	found := false
	for _, ev := range recorder.Events() {
		if ev.Event == "trash-changed" {
			found = true
		}
	}
	assert.True(t, found)

	items, err := e.ListTrash(trash.SortSpec{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, e.RestoreTrashItems([]string{items[0].ID}))
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestEngineSetHiddenReportsOKPaths(t *testing.T) {
	e, _ := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "visible.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	result, err := e.SetHidden([]string{path}, true)
	require.NoError(t, err)
	require.Len(t, result.OKPaths, 1)
	assert.Empty(t, result.Errors)
}

func TestEngineCancelTaskIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)

	e.CancelTask("never-registered")
	e.CancelTask("never-registered")
}

func TestEngineSettingsAndSetDefaultViewRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Equal(t, config.View(""), e.Settings().DefaultView)

	require.NoError(t, e.SetDefaultView(config.ViewGrid))
	assert.Equal(t, config.ViewGrid, e.Settings().DefaultView)
}

func TestEngineRejectsNewWorkOnceShuttingDown(t *testing.T) {
	e, _ := newTestEngine(t)
	e.lifecycle.BeginShutdown()

	_, err := e.PasteClipboard(nil, t.TempDir(), transfer.Copy, transfer.Skip, "task-1", nil)
	require.Error(t, err)

	var engineErr *Error
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, ErrorCodeShuttingDown, engineErr.Code)
}

func TestEngineSearchStreamFindsMatches(t *testing.T) {
	e, _ := newTestEngine(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target.txt"), []byte("x"), 0644))

	var names []string
	var sawDone bool
	err := e.SearchStream(dir, "target", "search-1", func(p search.Progress) {
		for _, entry := range p.Entries {
			names = append(names, entry.Name)
		}
		if p.Done {
			sawDone = true
		}
	})
	require.NoError(t, err)
	assert.Contains(t, names, "target.txt")
	assert.True(t, sawDone)
}
