package transfer

import (
	"os"
	"path/filepath"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/journal"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/runtime"
	"github.com/browsey/browsey/pkg/staging"
)

// Engine performs the local-filesystem transfer operations (paste, rename,
// set-hidden) that make up the bulk of the transfer engine component. Each
// mutating method returns the journal.UndoBatch recording what it did;
// callers (pkg/engine) are responsible for pushing successful batches onto
// their journal.Stack and for running a batch backward on failure or
// cancellation.
type Engine struct {
	Area   *staging.Area
	Logger *logging.Logger
}

// New creates an Engine backed by area for backup staging.
func New(area *staging.Area, logger *logging.Logger) *Engine {
	return &Engine{Area: area, Logger: logger}
}

// PasteResult is the outcome of a successful Paste.
type PasteResult struct {
	Batch        journal.UndoBatch
	CreatedPaths []string
}

// Paste copies or moves every path in sources into dest, per mode and
// policy. On the first unrecoverable failure or cancellation, everything
// committed so far in this call is run backward and the error is returned;
// a partially-applied batch is never handed back to the caller to push.
func (e *Engine) Paste(sources []string, dest string, mode Mode, policy CollisionPolicy, cancel runtime.CancelFlag, onProgress ProgressFunc) (PasteResult, error) {
	if len(sources) == 0 {
		return PasteResult{}, newError(ErrorCodeInvalidInput, "paste requires at least one source path")
	}
	if err := fspath.EnsureExistingDirNonsymlink(dest); err != nil {
		return PasteResult{}, err
	}

	var actions []journal.TransferAction
	var created []string

	rollback := func(cause error) (PasteResult, error) {
		batch := journal.UndoBatch{Actions: actions}
		ops := fsOps{logger: e.Logger}
		if rbErr := batch.Apply(journal.Backward, ops); rbErr != nil {
			wrapped := newError(ErrorCodeRollbackFailed, "rollback failed after %s: %s", cause.Error(), rbErr.Error())
			return PasteResult{}, wrapped
		}
		return PasteResult{}, cause
	}

	for _, source := range sources {
		if cancel != nil && cancel.Load() {
			return rollback(newError(ErrorCodeCancelled, "paste cancelled"))
		}

		info, err := fspath.EnsureExistingPathNonsymlink(source)
		if err != nil {
			return rollback(err)
		}

		childDest := filepath.Join(dest, filepath.Base(source))
		childActions, createdPath, err := e.pasteOne(source, childDest, info.IsDir(), mode, policy, cancel, onProgress)
		actions = append(actions, childActions...)
		if err != nil {
			return rollback(err)
		}
		if createdPath != "" {
			created = append(created, createdPath)
		}
	}

	return PasteResult{
		Batch:        journal.UndoBatch{ID: "", Label: "paste", Actions: actions},
		CreatedPaths: created,
	}, nil
}

func (e *Engine) pasteOne(src, dest string, isDir bool, mode Mode, policy CollisionPolicy, cancel runtime.CancelFlag, onProgress ProgressFunc) ([]journal.TransferAction, string, error) {
	_, statErr := os.Lstat(dest)
	exists := statErr == nil

	if !exists {
		actions, err := transferOneEntry(src, dest, isDir, mode, cancel, e.Logger)
		return actions, dest, err
	}

	if isDir && policy == MergeForDirs {
		actions, err := MergeDir(src, dest, mode, policy, e.Area, cancel, e.Logger)
		if err == nil && mode == Cut {
			if rmErr := os.Remove(src); rmErr != nil {
				e.Logger.Warnf("unable to remove merged source directory %s: %s", src, rmErr.Error())
			}
		}
		return actions, dest, err
	}

	switch policy {
	case Skip:
		return nil, "", nil
	case Overwrite:
		if isDir {
			return nil, "", newError(ErrorCodeInvalidInput, "cannot overwrite a directory with a file-overwrite policy: %s", dest)
		}
		backupAction, err := stageForOverwrite(dest, e.Area)
		if err != nil {
			return nil, "", err
		}
		rest, err := transferOneEntry(src, dest, false, mode, cancel, e.Logger)
		actions := append([]journal.TransferAction{backupAction}, rest...)
		return actions, dest, err
	case RenameSuffix:
		target := pickUnusedSuffix(dest)
		actions, err := transferOneEntry(src, target, isDir, mode, cancel, e.Logger)
		return actions, target, err
	default:
		return nil, "", newError(ErrorCodeDestinationExists, "destination already exists: %s", dest)
	}
}

// SetHidden toggles the hidden state of every path in paths, each
// independently. It returns the paths that succeeded (note that on POSIX a
// successful toggle changes the path itself, so okPaths reflects the
// post-toggle names, not the originals) and the journal batch recording
// every success; the first failure is returned as err, but processing
// continues for the remaining paths so the caller can still report partial
// success.
func (e *Engine) SetHidden(paths []string, hidden bool) (okPaths []string, batch journal.UndoBatch, err error) {
	var actions []journal.TransferAction

	for _, path := range paths {
		newPath, changed, hiddenErr := applyHidden(path, hidden)
		if hiddenErr != nil {
			if err == nil {
				err = newError(ErrorCodeHiddenUpdateFailed, "unable to set hidden state for %s: %s", path, hiddenErr.Error())
			}
			continue
		}

		if changed {
			if newPath != path {
				actions = append(actions, journal.NewRename(path, newPath, fspath.PathSnapshot{}))
			} else {
				actions = append(actions, journal.NewHiddenToggled(path, !hidden))
			}
		}
		okPaths = append(okPaths, newPath)
	}

	batch = journal.UndoBatch{Label: "set-hidden", Actions: actions}
	return okPaths, batch, err
}

// Rename renames a single source to newName within its current parent
// directory.
func (e *Engine) Rename(source, newName string) (string, journal.UndoBatch, error) {
	actions, err := RenameMany([]RenameRequest{{Source: source, NewName: newName}})
	if err != nil {
		batch := journal.UndoBatch{Actions: actions}
		if rbErr := batch.Apply(journal.Backward, fsOps{logger: e.Logger}); rbErr != nil {
			return "", journal.UndoBatch{}, newError(ErrorCodeRollbackFailed, "rollback failed after %s: %s", err.Error(), rbErr.Error())
		}
		return "", journal.UndoBatch{}, err
	}
	finalPath := filepath.Join(filepath.Dir(source), newName)
	return finalPath, journal.UndoBatch{Label: "rename", Actions: actions}, nil
}

// Apply replays batch against the real filesystem in the given direction.
// pkg/engine uses this to drive undo (Backward) and redo (Forward) for any
// batch pulled off its journal.Stack, regardless of which component
// originally produced it (paste, rename, or trash).
func (e *Engine) Apply(batch journal.UndoBatch, direction journal.Direction) error {
	return batch.Apply(direction, fsOps{logger: e.Logger})
}
