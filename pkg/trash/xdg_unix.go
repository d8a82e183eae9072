//go:build !windows

package trash

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/transfer"
)

// xdgBackend implements the freedesktop.org Trash specification: items move
// into $XDG_DATA_HOME/Trash/files, each accompanied by a sidecar
// $XDG_DATA_HOME/Trash/info/<name>.trashinfo recording the original
// absolute path and deletion timestamp. It's used as the native backend on
// both Linux and macOS; true Finder-trash semantics on macOS (per-volume
// .Trash, Info.plist metadata) are not implemented — see DESIGN.md.
type xdgBackend struct {
	root   string // .../Trash
	logger *logging.Logger
}

func newNativeBackend(logger *logging.Logger) nativeBackend {
	return &xdgBackend{root: xdgTrashRoot(), logger: logger}
}

func xdgTrashRoot() string {
	if custom := os.Getenv("BROWSEY_XDG_TRASH_DIR"); custom != "" {
		return custom
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "Trash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "Trash")
	}
	return filepath.Join(home, ".local", "share", "Trash")
}

func (b *xdgBackend) filesDir() string { return filepath.Join(b.root, "files") }
func (b *xdgBackend) infoDir() string  { return filepath.Join(b.root, "info") }

func (b *xdgBackend) ensureDirs() error {
	if err := os.MkdirAll(b.filesDir(), 0700); err != nil {
		return err
	}
	return os.MkdirAll(b.infoDir(), 0700)
}

func (b *xdgBackend) MoveToTrash(path string) (Item, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Item{}, newError(ErrorCodeNotFound, "unable to stat %s: %s", path, err.Error())
	}
	if err := b.ensureDirs(); err != nil {
		return Item{}, newError(ErrorCodeTrashFailed, "unable to prepare trash directories: %s", err.Error())
	}

	name := uniqueTrashName(b.filesDir(), filepath.Base(path))
	destPath := filepath.Join(b.filesDir(), name)
	infoPath := filepath.Join(b.infoDir(), name+".trashinfo")

	deletedAt := time.Now()
	if err := writeTrashInfo(infoPath, path, deletedAt); err != nil {
		return Item{}, err
	}

	if err := os.Rename(path, destPath); err != nil {
		if !fspath.IsCrossDeviceError(err) {
			_ = os.Remove(infoPath)
			return Item{}, newError(ErrorCodeTrashFailed, "unable to move %s into the trash: %s", path, err.Error())
		}

		// Cross-mount: the rename can't cross volumes, so stage via
		// copy-then-remove instead. The path string recorded above is
		// still correct, but re-derive and rewrite it from the
		// now-canonical form in case the caller passed something
		// relative or symlink-laden that only resolves meaningfully
		// before the source is gone.
		if info.IsDir() {
			if err := copyDirRecursive(path, destPath); err != nil {
				_ = os.Remove(infoPath)
				return Item{}, newError(ErrorCodeTrashFailed, "unable to stage directory %s into the trash: %s", path, err.Error())
			}
		} else if err := transfer.CopyFile(path, destPath, false, nil, nil, nil); err != nil {
			_ = os.Remove(infoPath)
			return Item{}, newError(ErrorCodeTrashFailed, "unable to stage %s into the trash: %s", path, err.Error())
		}

		if canonical, normErr := fspath.Normalize(path, false); normErr == nil && canonical != path {
			if err := rewriteOriginalPath(Item{ID: infoPath, DeletedAt: deletedAt}, canonical); err != nil {
				b.logger.Warnf("unable to rewrite trashinfo original path for %s: %s", infoPath, err.Error())
			}
		}

		if err := os.RemoveAll(path); err != nil {
			return Item{}, newError(ErrorCodeTrashFailed, "unable to remove %s after staging into the trash: %s", path, err.Error())
		}
	}

	size := int64(0)
	if !info.IsDir() {
		size = info.Size()
	}
	return Item{
		ID:           infoPath,
		OriginalPath: path,
		TrashedPath:  destPath,
		IsDir:        info.IsDir(),
		Size:         size,
		DeletedAt:    deletedAt,
		Fallback:     false,
	}, nil
}

func (b *xdgBackend) List() ([]Item, error) {
	entries, err := os.ReadDir(b.infoDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, newError(ErrorCodeTrashFailed, "unable to list trash: %s", err.Error())
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".trashinfo") {
			continue
		}
		infoPath := filepath.Join(b.infoDir(), entry.Name())
		original, deletedAt, err := readTrashInfo(infoPath)
		if err != nil {
			b.logger.Warnf("skipping unreadable trashinfo %s: %s", infoPath, err.Error())
			continue
		}

		trashName := strings.TrimSuffix(entry.Name(), ".trashinfo")
		trashedPath := filepath.Join(b.filesDir(), trashName)
		stat, statErr := os.Lstat(trashedPath)
		if statErr != nil {
			b.logger.Warnf("trashinfo %s has no matching content at %s, skipping", infoPath, trashedPath)
			continue
		}

		size := int64(0)
		if !stat.IsDir() {
			size = stat.Size()
		}
		items = append(items, Item{
			ID:           infoPath,
			OriginalPath: original,
			TrashedPath:  trashedPath,
			IsDir:        stat.IsDir(),
			Size:         size,
			DeletedAt:    deletedAt,
			Fallback:     false,
		})
	}
	return items, nil
}

func (b *xdgBackend) Restore(item Item) error {
	if _, err := os.Lstat(item.OriginalPath); err == nil {
		return newError(ErrorCodeInvalidInput, "restore target already exists: %s", item.OriginalPath)
	}
	if err := os.MkdirAll(filepath.Dir(item.OriginalPath), 0755); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to recreate parent directory for %s: %s", item.OriginalPath, err.Error())
	}
	if err := os.Rename(item.TrashedPath, item.OriginalPath); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to restore %s: %s", item.OriginalPath, err.Error())
	}
	if err := os.Remove(item.ID); err != nil {
		b.logger.Warnf("unable to remove trashinfo sidecar %s: %s", item.ID, err.Error())
	}
	return nil
}

func (b *xdgBackend) Purge(item Item) error {
	if err := os.RemoveAll(item.TrashedPath); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to purge %s: %s", item.TrashedPath, err.Error())
	}
	if err := os.Remove(item.ID); err != nil && !os.IsNotExist(err) {
		b.logger.Warnf("unable to remove trashinfo sidecar %s: %s", item.ID, err.Error())
	}
	return nil
}

// rewriteOriginalPath overwrites the Path= field of item's .trashinfo with
// newOriginal. It's used when the item's eventual on-disk original path
// diverges from the one recorded at move time — the cross-mount staging
// case xdgBackend.MoveToTrash works around.
func rewriteOriginalPath(item Item, newOriginal string) error {
	return writeTrashInfo(item.ID, newOriginal, item.DeletedAt)
}

func uniqueTrashName(filesDir, base string) string {
	candidate := base
	for n := 1; ; n++ {
		if _, err := os.Lstat(filepath.Join(filesDir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
}

func writeTrashInfo(infoPath, originalPath string, deletedAt time.Time) error {
	encoded := (&url.URL{Path: originalPath}).String()
	contents := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n", encoded, deletedAt.Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(infoPath, []byte(contents), 0600); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to write trashinfo %s: %s", infoPath, err.Error())
	}
	return nil
}

func readTrashInfo(infoPath string) (string, time.Time, error) {
	f, err := os.Open(infoPath)
	if err != nil {
		return "", time.Time{}, err
	}
	defer f.Close()

	var path string
	var deletedAt time.Time
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Path="):
			decoded, err := url.PathUnescape(strings.TrimPrefix(line, "Path="))
			if err != nil {
				decoded = strings.TrimPrefix(line, "Path=")
			}
			path = decoded
		case strings.HasPrefix(line, "DeletionDate="):
			parsed, err := time.Parse("2006-01-02T15:04:05", strings.TrimPrefix(line, "DeletionDate="))
			if err == nil {
				deletedAt = parsed
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", time.Time{}, err
	}
	if path == "" {
		return "", time.Time{}, fmt.Errorf("trashinfo %s has no Path field", infoPath)
	}
	return path, deletedAt, nil
}
