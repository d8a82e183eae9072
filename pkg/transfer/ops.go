package transfer

import (
	"io"
	"os"

	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/must"
)

// fsOps implements journal.Ops directly against the local filesystem. It's
// the concrete type every Engine operation journals against and the one
// undo()/redo() replay through.
type fsOps struct {
	logger *logging.Logger
}

// Rename moves from to to, falling back to copy-then-delete when they
// straddle a filesystem boundary. A KindMoved action is journaled this way
// in the forward direction already (see moveAcrossFilesystems in
// merge.go); replaying that same action backward must degrade the same
// way or undoing a cross-device cut fails with EXDEV.
func (o fsOps) Rename(from, to string) error {
	return moveAcrossFilesystems(from, to)
}

func (o fsOps) Remove(path string) error {
	return os.RemoveAll(path)
}

func (o fsOps) SetHidden(path string, hidden bool) error {
	_, _, err := applyHidden(path, hidden)
	return err
}

func (o fsOps) Mkdir(path string) error {
	return os.Mkdir(path, 0755)
}

func (o fsOps) RemoveIfEmpty(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (o fsOps) RestoreFromBackup(backup, original string) error {
	src, err := os.Open(backup)
	if err != nil {
		return err
	}
	defer must.Close(src, o.logger)

	dst, err := os.OpenFile(original, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer must.Close(dst, o.logger)

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return os.Remove(backup)
}
