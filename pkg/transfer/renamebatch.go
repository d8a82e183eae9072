package transfer

import (
	"path/filepath"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/journal"
	"github.com/browsey/browsey/pkg/random"
)

// RenameRequest is one (source, new name) pair in a RenameMany batch.
type RenameRequest struct {
	Source  string
	NewName string
}

// RenameMany validates and executes a batch of renames. It stages each
// source to a unique temporary name in the same directory first (phase 1),
// then commits each temp name to its final target (phase 2); staging first
// avoids a collision when two renames in the same batch swap names (e.g.
// a<->b). If any step fails, the actions committed so far are returned
// alongside the error so the caller can run them backward; if even that
// backward replay fails, the caller surfaces ErrorCodeRollbackFailed.
func RenameMany(requests []RenameRequest) ([]journal.TransferAction, error) {
	if err := validateRenameBatch(requests); err != nil {
		return nil, err
	}

	var actions []journal.TransferAction
	tempNames := make([]string, len(requests))

	for i, req := range requests {
		tempName, err := uniqueTempName(req.Source)
		if err != nil {
			return actions, err
		}
		if err := renameWithSnapshot(req.Source, tempName, &actions); err != nil {
			return actions, err
		}
		tempNames[i] = tempName
	}

	for i, req := range requests {
		finalPath := filepath.Join(filepath.Dir(req.Source), req.NewName)
		if err := renameWithSnapshot(tempNames[i], finalPath, &actions); err != nil {
			return actions, err
		}
	}

	return actions, nil
}

func renameWithSnapshot(from, to string, actions *[]journal.TransferAction) error {
	snap, err := fspath.Snapshot(from)
	if err != nil {
		return err
	}
	if err := moveAcrossFilesystems(from, to); err != nil {
		return err
	}
	*actions = append(*actions, journal.NewRename(from, to, snap))
	return nil
}

func uniqueTempName(source string) (string, error) {
	suffix, err := random.NewHexString()
	if err != nil {
		return "", newError(ErrorCodeRenameFailed, "unable to generate temporary rename name: %s", err.Error())
	}
	dir := filepath.Dir(source)
	return filepath.Join(dir, ".browsey-rename-"+suffix), nil
}

func validateRenameBatch(requests []RenameRequest) error {
	if len(requests) == 0 {
		return newError(ErrorCodeInvalidInput, "rename batch must not be empty")
	}

	seenSources := make(map[string]bool, len(requests))
	targetsByParent := make(map[string]map[string]bool, len(requests))

	for _, req := range requests {
		if req.NewName == "" {
			return newError(ErrorCodeInvalidInput, "rename target name must not be empty")
		}
		if req.NewName == "." || req.NewName == ".." || req.NewName != filepath.Base(req.NewName) {
			return newError(ErrorCodeInvalidInput, "rename target name must be a single path component, got %q", req.NewName)
		}
		if fspath.IsRoot(req.Source) {
			return newError(ErrorCodeRootForbidden, "cannot rename the filesystem root")
		}
		if seenSources[req.Source] {
			return newError(ErrorCodeDuplicateSourcePath, "duplicate source path in rename batch: %s", req.Source)
		}
		seenSources[req.Source] = true

		if err := fspath.EnsureNoSymlinkComponentsExistingPrefix(filepath.Dir(req.Source)); err != nil {
			return err
		}

		parent := filepath.Dir(req.Source)
		if targetsByParent[parent] == nil {
			targetsByParent[parent] = make(map[string]bool)
		}
		if targetsByParent[parent][req.NewName] {
			return newError(ErrorCodeDuplicateTargetName, "duplicate target name %q under %s", req.NewName, parent)
		}
		targetsByParent[parent][req.NewName] = true
	}

	return nil
}
