// Package journal implements the undo/redo history: an ordered list of
// reversible filesystem actions, grouped into user-visible UndoBatches and
// held on a bounded in-memory stack. History never survives a restart —
// staged backups are wiped at startup by pkg/staging, and nothing here is
// persisted to disk.
package journal

import (
	"os"

	"github.com/browsey/browsey/pkg/fspath"
)

// Direction selects which way a TransferAction is replayed: Forward is the
// action as originally performed, Backward undoes it.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Kind tags which variant of TransferAction a given value holds. Go has no
// native sum type, so TransferAction is represented as a single struct
// carrying a Kind discriminant plus the fields relevant to that kind —
// the same shape Apply dispatches on, generalized from the tree-diff
// change-list dispatcher this was distilled from.
type Kind int

const (
	KindRename Kind = iota
	KindCopied
	KindMoved
	KindDeleted
	KindHiddenToggled
	KindMkDir
)

// TransferAction is a single reversible journal entry. Exactly the fields
// relevant to Kind are populated; Apply dispatches on Kind alone, so it's
// the caller's responsibility to construct a TransferAction through one of
// the New* constructors rather than populating the struct by hand.
type TransferAction struct {
	Kind Kind

	// Rename
	RenameFrom     string
	RenameTo       string
	RenameFromSnap fspath.PathSnapshot

	// Copied
	CopySource  string
	CopyCreated string

	// Moved
	MoveSource     string
	MoveDest       string
	MoveSourceSnap fspath.PathSnapshot

	// Deleted
	DeleteOriginal     string
	DeleteStagedBackup string
	DeleteOriginalSnap fspath.PathSnapshot

	// HiddenToggled
	HiddenPath        string
	HiddenFromVisible bool

	// MkDir
	MkDirPath string
}

// NewRename records a rename from one path to another.
func NewRename(from, to string, fromSnap fspath.PathSnapshot) TransferAction {
	return TransferAction{Kind: KindRename, RenameFrom: from, RenameTo: to, RenameFromSnap: fromSnap}
}

// NewCopied records the creation of a new path as a copy of an existing
// source. Forward replay is a no-op (the copy already happened); backward
// replay deletes created, leaving source untouched.
func NewCopied(source, created string) TransferAction {
	return TransferAction{Kind: KindCopied, CopySource: source, CopyCreated: created}
}

// NewMoved records a move from source to dest.
func NewMoved(source, dest string, sourceSnap fspath.PathSnapshot) TransferAction {
	return TransferAction{Kind: KindMoved, MoveSource: source, MoveDest: dest, MoveSourceSnap: sourceSnap}
}

// NewDeleted records a deletion whose content was staged under stagedBackup
// before removal.
func NewDeleted(original, stagedBackup string, originalSnap fspath.PathSnapshot) TransferAction {
	return TransferAction{
		Kind:               KindDeleted,
		DeleteOriginal:     original,
		DeleteStagedBackup: stagedBackup,
		DeleteOriginalSnap: originalSnap,
	}
}

// NewHiddenToggled records a visibility change at path.
func NewHiddenToggled(path string, fromVisible bool) TransferAction {
	return TransferAction{Kind: KindHiddenToggled, HiddenPath: path, HiddenFromVisible: fromVisible}
}

// NewMkDir records the creation of a directory at path.
func NewMkDir(path string) TransferAction {
	return TransferAction{Kind: KindMkDir, MkDirPath: path}
}

// PrimaryPath returns the path most representative of this action's
// effect on the original filesystem location — RenameFrom for a rename,
// DeleteOriginal for a deletion, and so on. pkg/engine uses this to report
// undo()/redo()'s affected_paths without needing to know each Kind's field
// layout itself.
func (a TransferAction) PrimaryPath() string {
	switch a.Kind {
	case KindRename:
		return a.RenameFrom
	case KindCopied:
		return a.CopyCreated
	case KindMoved:
		return a.MoveSource
	case KindDeleted:
		return a.DeleteOriginal
	case KindHiddenToggled:
		return a.HiddenPath
	case KindMkDir:
		return a.MkDirPath
	default:
		return ""
	}
}

// Ops is the set of filesystem side effects Apply needs to perform or
// reverse a TransferAction. It's an interface (rather than calling os./
// fspath functions directly) so tests can exercise Apply's dispatch logic
// against a fake, and so pkg/transfer and pkg/trash can route through their
// own already-open handles or rclone broker calls where relevant.
type Ops interface {
	Rename(from, to string) error
	Remove(path string) error
	SetHidden(path string, hidden bool) error
	Mkdir(path string) error
	RemoveIfEmpty(path string) error
	RestoreFromBackup(backup, original string) error
}

// Apply performs action in the given direction using ops.
func (a TransferAction) Apply(direction Direction, ops Ops) error {
	switch a.Kind {
	case KindRename:
		if direction == Forward {
			return ops.Rename(a.RenameFrom, a.RenameTo)
		}
		return ops.Rename(a.RenameTo, a.RenameFrom)

	case KindCopied:
		if direction == Forward {
			return nil
		}
		return ops.Remove(a.CopyCreated)

	case KindMoved:
		if direction == Forward {
			return ops.Rename(a.MoveSource, a.MoveDest)
		}
		return ops.Rename(a.MoveDest, a.MoveSource)

	case KindDeleted:
		if direction == Forward {
			return ops.Remove(a.DeleteOriginal)
		}
		return ops.RestoreFromBackup(a.DeleteStagedBackup, a.DeleteOriginal)

	case KindHiddenToggled:
		if direction == Forward {
			return ops.SetHidden(a.HiddenPath, a.HiddenFromVisible)
		}
		return ops.SetHidden(a.HiddenPath, !a.HiddenFromVisible)

	case KindMkDir:
		if direction == Forward {
			return ops.Mkdir(a.MkDirPath)
		}
		return ops.RemoveIfEmpty(a.MkDirPath)

	default:
		return os.ErrInvalid
	}
}
