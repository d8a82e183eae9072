//go:build windows

package trash

import (
	"github.com/browsey/browsey/pkg/logging"
)

// windowsBackend always refuses: wiring the real Recycle Bin (SHFileOperation
// / IFileOperation) needs either cgo or a dedicated Win32 binding not present
// anywhere in the example corpus, so Windows always takes the staging
// fallback path. See DESIGN.md for the tradeoff.
type windowsBackend struct {
	logger *logging.Logger
}

func newNativeBackend(logger *logging.Logger) nativeBackend {
	return &windowsBackend{logger: logger}
}

func (b *windowsBackend) MoveToTrash(path string) (Item, error) {
	return Item{}, newError(ErrorCodeTrashFailed, "native recycle bin is not wired on windows: %s", path)
}

func (b *windowsBackend) List() ([]Item, error) {
	return nil, nil
}

func (b *windowsBackend) Restore(item Item) error {
	return newError(ErrorCodeTrashFailed, "native recycle bin is not wired on windows")
}

func (b *windowsBackend) Purge(item Item) error {
	return newError(ErrorCodeTrashFailed, "native recycle bin is not wired on windows")
}
