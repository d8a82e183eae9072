package engine

import (
	"context"
	"path/filepath"

	"github.com/browsey/browsey/pkg/cloudpath"
	"github.com/browsey/browsey/pkg/dropmode"
	"github.com/browsey/browsey/pkg/events"
	"github.com/browsey/browsey/pkg/journal"
	"github.com/browsey/browsey/pkg/rclone"
	"github.com/browsey/browsey/pkg/search"
	"github.com/browsey/browsey/pkg/trash"
	"github.com/browsey/browsey/pkg/transfer"
)

// PasteResult is the wire shape of paste_clipboard's result.
type PasteResult struct {
	CreatedPaths []string
}

// PasteClipboard copies or moves sources into dest under policy, pushing
// the resulting batch onto the undo stack on success.
func (e *Engine) PasteClipboard(sources []string, dest string, mode transfer.Mode, policy transfer.CollisionPolicy, taskID string, onProgress transfer.ProgressFunc) (PasteResult, error) {
	if err := e.checkNotShuttingDown(); err != nil {
		return PasteResult{}, err
	}

	guard, err := e.cancels.Register(taskID)
	if err != nil {
		return PasteResult{}, err
	}
	defer guard.Release()

	result, err := e.transfer.Paste(sources, dest, mode, policy, guard.Token(), onProgress)
	if err != nil {
		return PasteResult{}, err
	}

	e.journal.Push(result.Batch)
	return PasteResult{CreatedPaths: result.CreatedPaths}, nil
}

// RenameResult is the wire shape of rename_entry's result.
type RenameResult struct {
	FinalPath string
}

// RenameEntry renames a single source to newName.
func (e *Engine) RenameEntry(source, newName string) (RenameResult, error) {
	if err := e.checkNotShuttingDown(); err != nil {
		return RenameResult{}, err
	}

	finalPath, batch, err := e.transfer.Rename(source, newName)
	if err != nil {
		return RenameResult{}, err
	}
	e.journal.Push(batch)
	return RenameResult{FinalPath: finalPath}, nil
}

// RenameManyResult is the wire shape of rename_many's result.
type RenameManyResult struct {
	FinalPaths []string
}

// RenameMany renames every request as a single atomic batch (see
// pkg/transfer.RenameMany for the two-phase staging this uses to support
// same-batch name swaps).
func (e *Engine) RenameMany(requests []transfer.RenameRequest) (RenameManyResult, error) {
	if err := e.checkNotShuttingDown(); err != nil {
		return RenameManyResult{}, err
	}

	actions, err := transfer.RenameMany(requests)
	if err != nil {
		if rbErr := e.transfer.Apply(journal.UndoBatch{Actions: actions}, journal.Backward); rbErr != nil {
			return RenameManyResult{}, newError(ErrorCodeRollbackFailed, "rollback failed after %s: %s", err.Error(), rbErr.Error())
		}
		return RenameManyResult{}, err
	}

	finalPaths := make([]string, 0, len(requests))
	for _, req := range requests {
		finalPaths = append(finalPaths, filepath.Join(filepath.Dir(req.Source), req.NewName))
	}

	e.journal.Push(journal.UndoBatch{Label: "rename-many", Actions: actions})
	return RenameManyResult{FinalPaths: finalPaths}, nil
}

// SetHiddenResult is the wire shape of set_hidden's result.
type SetHiddenResult struct {
	OKPaths []string
	Errors  []string
}

// SetHidden toggles the hidden state of every path independently,
// reporting partial success.
func (e *Engine) SetHidden(paths []string, hidden bool) (SetHiddenResult, error) {
	if err := e.checkNotShuttingDown(); err != nil {
		return SetHiddenResult{}, err
	}

	okPaths, batch, err := e.transfer.SetHidden(paths, hidden)
	if len(batch.Actions) > 0 {
		e.journal.Push(batch)
	}

	result := SetHiddenResult{OKPaths: okPaths}
	if err != nil {
		result.Errors = []string{err.Error()}
	}
	return result, nil
}

// MoveToTrash moves every path into the trash.
func (e *Engine) MoveToTrash(paths []string) error {
	if err := e.checkNotShuttingDown(); err != nil {
		return err
	}

	actions, err := e.trash.MoveToTrash(paths)
	if len(actions) > 0 {
		e.journal.Push(journal.UndoBatch{Label: "move-to-trash", Actions: actions})
	}
	return err
}

// RestoreTrashItems restores every identified trash item.
func (e *Engine) RestoreTrashItems(ids []string) error {
	if err := e.checkNotShuttingDown(); err != nil {
		return err
	}
	return e.trash.Restore(ids)
}

// PurgeTrashItems permanently deletes every identified trash item.
func (e *Engine) PurgeTrashItems(ids []string) error {
	if err := e.checkNotShuttingDown(); err != nil {
		return err
	}
	return e.trash.Purge(ids)
}

// ListTrash lists every item currently in the trash.
func (e *Engine) ListTrash(sortSpec trash.SortSpec) ([]trash.Item, error) {
	return e.trash.ListTrash(sortSpec)
}

// ResolveDropClipboardMode decides whether a drag-and-drop should copy or
// cut.
func (e *Engine) ResolveDropClipboardMode(paths []string, dest string, preferCopy bool) (dropmode.Mode, error) {
	return dropmode.Resolve(paths, dest, preferCopy)
}

// UndoResult is the wire shape of undo()/redo()'s result.
type UndoResult struct {
	AffectedPaths []string
	Partial       bool
}

// Undo pops the top batch off the journal and replays it backward.
func (e *Engine) Undo() (UndoResult, error) {
	batch, ok := e.journal.Undo()
	if !ok {
		return UndoResult{}, newError(ErrorCodeUndoUnavailable, "nothing to undo")
	}
	return e.replay(batch, journal.Backward)
}

// Redo pops the top batch off the redo stack and replays it forward.
func (e *Engine) Redo() (UndoResult, error) {
	batch, ok := e.journal.Redo()
	if !ok {
		return UndoResult{}, newError(ErrorCodeRedoUnavailable, "nothing to redo")
	}
	return e.replay(batch, journal.Forward)
}

// replay runs batch through the transfer engine's Apply, reporting every
// action's PrimaryPath as affected in both directions. journal.UndoBatch.Apply
// stops at the first failing action: the actions after it are not replayed,
// and they are not listed separately in the result. replay reports the batch
// as partial, with ErrorCodeRollbackFailed, whenever Apply returns an error.
func (e *Engine) replay(batch journal.UndoBatch, direction journal.Direction) (UndoResult, error) {
	affected := make([]string, 0, len(batch.Actions))
	for _, action := range batch.Actions {
		affected = append(affected, action.PrimaryPath())
	}

	if err := e.transfer.Apply(batch, direction); err != nil {
		e.logger.Warnf("replay of batch %q failed partway: %s", batch.Label, err.Error())
		return UndoResult{AffectedPaths: affected, Partial: true},
			newError(ErrorCodeRollbackFailed, "replay failed: %s", err.Error())
	}
	return UndoResult{AffectedPaths: affected, Partial: false}, nil
}

// CancelTask signals cancellation for a registered task id. Cancel is
// idempotent: a second cancel for an id that's already finished (and so
// is no longer registered) is silently ignored, matching spec.md §5's
// "repeated cancels are silently swallowed" rule.
func (e *Engine) CancelTask(id string) {
	e.cancels.Cancel(id)
}

// ListCloudRemotes lists every configured rclone remote.
func (e *Engine) ListCloudRemotes(ctx context.Context) ([]rclone.Remote, error) {
	return e.broker.ListRemotes(ctx)
}

// ListCloudEntries lists the contents of a cloud directory, bounding
// concurrent rclone invocations against the target remote to the
// configured per-remote permit count.
func (e *Engine) ListCloudEntries(ctx context.Context, path cloudpath.Path) ([]rclone.Entry, error) {
	sem := e.remoteSemaphore(path.Remote)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer sem.Release(1)

	entries, err := e.broker.ListDir(ctx, path)
	if err == nil {
		e.emit("cloud-dir-refreshed", events.CloudDirRefreshedPayload{Path: path.String(), EntryCount: len(entries)})
	}
	return entries, err
}

// NormalizeCloudPath parses and re-renders a cloud path string per the
// cloud path grammar (spec.md §6).
func (e *Engine) NormalizeCloudPath(raw string) (string, error) {
	parsed, err := cloudpath.Parse(raw)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// SearchStream runs a recursive name-substring search from start, invoking
// onProgress once per batch (the final call has Done set). It runs
// synchronously on the calling goroutine and registers taskID as its own
// cancel guard; cmd/browsey calls it directly and blocks until it returns.
func (e *Engine) SearchStream(start, query, taskID string, onProgress func(search.Progress)) error {
	if err := e.checkNotShuttingDown(); err != nil {
		return err
	}

	guard, err := e.cancels.Register(taskID)
	if err != nil {
		return err
	}
	defer guard.Release()

	var stars search.StarredLookup = search.NoStars{}
	if e.search != nil {
		if resolved := e.search(); resolved != nil {
			stars = resolved
		}
	}

	search.Stream(start, query, stars, guard.Token(), e.logger, onProgress)
	return nil
}
