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

// MergeDir recursively merges src into dest: children that don't exist in
// dest are copied or moved (per mode) with a Copied/Moved journal entry;
// children that do exist are handled per policy (Skip is a no-op,
// Overwrite stages the existing destination file to backup before
// overwriting it, RenameSuffix picks an unused suffixed name, and
// MergeForDirs recurses when both sides are directories). On cancellation,
// the committed-so-far actions are returned alongside the error so the
// caller can run them backward.
func MergeDir(src, dest string, mode Mode, policy CollisionPolicy, area *staging.Area, cancel runtime.CancelFlag, logger *logging.Logger) ([]journal.TransferAction, error) {
	var actions []journal.TransferAction

	entries, err := os.ReadDir(src)
	if err != nil {
		return actions, newError(ErrorCodeInvalidInput, "unable to read directory %s: %s", src, err.Error())
	}

	for _, entry := range entries {
		if cancel != nil && cancel.Load() {
			return actions, newError(ErrorCodeCancelled, "merge cancelled")
		}

		childSrc := filepath.Join(src, entry.Name())
		childDest := filepath.Join(dest, entry.Name())

		childActions, err := mergeEntry(childSrc, childDest, entry, mode, policy, area, cancel, logger)
		actions = append(actions, childActions...)
		if err != nil {
			return actions, err
		}
	}

	return actions, nil
}

func mergeEntry(childSrc, childDest string, entry os.DirEntry, mode Mode, policy CollisionPolicy, area *staging.Area, cancel runtime.CancelFlag, logger *logging.Logger) ([]journal.TransferAction, error) {
	if entry.Type()&os.ModeSymlink != 0 {
		return nil, newError(ErrorCodeSymlinkUnsupported, "symlinks are not allowed: %s", childSrc)
	}

	destInfo, statErr := os.Lstat(childDest)
	exists := statErr == nil

	if !exists {
		return transferOneEntry(childSrc, childDest, entry.IsDir(), mode, cancel, logger)
	}

	switch policy {
	case Skip:
		return nil, nil

	case Overwrite:
		if entry.IsDir() || destInfo.IsDir() {
			return nil, newError(ErrorCodeInvalidInput, "cannot overwrite a directory collision: %s", childDest)
		}
		backupAction, err := stageForOverwrite(childDest, area)
		if err != nil {
			return nil, err
		}
		rest, err := transferOneEntry(childSrc, childDest, false, mode, cancel, logger)
		actions := append([]journal.TransferAction{backupAction}, rest...)
		return actions, err

	case RenameSuffix:
		target := pickUnusedSuffix(childDest)
		return transferOneEntry(childSrc, target, entry.IsDir(), mode, cancel, logger)

	case MergeForDirs:
		if !entry.IsDir() || !destInfo.IsDir() {
			return nil, newError(ErrorCodeInvalidInput, "merge-for-dirs collision is not a directory pair: %s", childDest)
		}
		return MergeDir(childSrc, childDest, mode, policy, area, cancel, logger)

	default:
		return nil, newError(ErrorCodeInvalidInput, "unrecognized collision policy")
	}
}

// transferOneEntry performs a single copy or move of one child (file or
// directory tree) and returns the journal entry recording it.
func transferOneEntry(src, dest string, isDir bool, mode Mode, cancel runtime.CancelFlag, logger *logging.Logger) ([]journal.TransferAction, error) {
	if isDir {
		if err := os.Mkdir(dest, 0755); err != nil {
			return nil, newError(ErrorCodeInvalidInput, "unable to create directory %s: %s", dest, err.Error())
		}
		mkdirAction := journal.NewMkDir(dest)

		nested, err := MergeDir(src, dest, mode, Skip, nil, cancel, logger)
		actions := append([]journal.TransferAction{mkdirAction}, nested...)
		if err != nil {
			return actions, err
		}
		if mode == Cut {
			if err := os.Remove(src); err != nil {
				logger.Warnf("unable to remove merged source directory %s: %s", src, err.Error())
			}
		}
		return actions, nil
	}

	if mode == Copy {
		if err := CopyFile(src, dest, false, cancel, nil, logger); err != nil {
			return nil, err
		}
		return []journal.TransferAction{journal.NewCopied(src, dest)}, nil
	}

	snap, err := fspath.Snapshot(src)
	if err != nil {
		return nil, err
	}
	if err := moveAcrossFilesystems(src, dest); err != nil {
		return nil, err
	}
	return []journal.TransferAction{journal.NewMoved(src, dest, snap)}, nil
}

// stageForOverwrite copies the existing destination into the staging area
// and returns the Deleted journal entry recording it, ready for
// transferOneEntry to then overwrite dest.
func stageForOverwrite(dest string, area *staging.Area) (journal.TransferAction, error) {
	snap, err := fspath.Snapshot(dest)
	if err != nil {
		return journal.TransferAction{}, err
	}

	backupPath, err := area.TempBackupPath(dest)
	if err != nil {
		return journal.TransferAction{}, newError(ErrorCodeInvalidInput, "unable to stage backup for %s: %s", dest, err.Error())
	}
	if err := CopyFile(dest, backupPath, false, nil, nil, nil); err != nil {
		return journal.TransferAction{}, err
	}
	if err := os.Remove(dest); err != nil {
		return journal.TransferAction{}, newError(ErrorCodeInvalidInput, "unable to remove %s before overwrite: %s", dest, err.Error())
	}

	return journal.NewDeleted(dest, backupPath, snap), nil
}

// pickUnusedSuffix finds the lowest RenameCandidate(base, n) that doesn't
// currently exist.
func pickUnusedSuffix(base string) string {
	for n := 1; ; n++ {
		candidate := RenameCandidate(base, n)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveAcrossFilesystems renames src to dest, degrading to copy-then-delete
// if they're on different volumes.
func moveAcrossFilesystems(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !fspath.IsCrossDeviceError(err) {
		return newError(ErrorCodeInvalidInput, "unable to move %s to %s: %s", src, dest, err.Error())
	}

	if err := CopyFile(src, dest, false, nil, nil, nil); err != nil {
		return err
	}
	if err := os.RemoveAll(src); err != nil {
		return newError(ErrorCodeInvalidInput, "unable to remove source after cross-device move %s: %s", src, err.Error())
	}
	return nil
}
