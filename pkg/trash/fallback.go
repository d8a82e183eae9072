package trash

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/staging"
	"github.com/browsey/browsey/pkg/transfer"
	"github.com/google/uuid"
)

// fallbackSubdir is the staging-area subdirectory holding trash fallback
// entries, kept apart from pkg/transfer's hash-bucketed overwrite backups
// (those live directly under the area root, never under this literal name).
const fallbackSubdir = "trash-fallback"

// fallbackBackend stages items under the app's own backup area when the
// native trash refuses a path (e.g. an unwritable trash directory, or any
// path on Windows).
// Each item gets its own directory so a directory source can be staged
// without colliding with a same-named sibling.
type fallbackBackend struct {
	area   *staging.Area
	logger *logging.Logger
}

func newFallbackBackend(area *staging.Area, logger *logging.Logger) *fallbackBackend {
	return &fallbackBackend{area: area, logger: logger}
}

type fallbackMeta struct {
	OriginalPath string    `json:"originalPath"`
	IsDir        bool      `json:"isDir"`
	Size         int64     `json:"size"`
	DeletedAt    time.Time `json:"deletedAt"`
}

func (b *fallbackBackend) rootDir() string {
	return filepath.Join(b.area.Dir, fallbackSubdir)
}

func (b *fallbackBackend) MoveToTrash(path string) (Item, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Item{}, newError(ErrorCodeNotFound, "unable to stat %s: %s", path, err.Error())
	}

	id := uuid.New().String()
	entryDir := filepath.Join(b.rootDir(), id)
	if err := os.MkdirAll(entryDir, 0700); err != nil {
		return Item{}, newError(ErrorCodeTrashFailed, "unable to create staging entry: %s", err.Error())
	}
	contentPath := filepath.Join(entryDir, filepath.Base(path))

	size := int64(0)
	if !info.IsDir() {
		size = info.Size()
	}
	meta := fallbackMeta{OriginalPath: path, IsDir: info.IsDir(), Size: size, DeletedAt: time.Now()}
	if err := writeFallbackMeta(entryDir, meta); err != nil {
		_ = os.RemoveAll(entryDir)
		return Item{}, err
	}

	if err := moveIntoStaging(path, contentPath, info.IsDir()); err != nil {
		_ = os.RemoveAll(entryDir)
		return Item{}, err
	}

	return Item{
		ID:           id,
		OriginalPath: path,
		TrashedPath:  contentPath,
		IsDir:        info.IsDir(),
		Size:         size,
		DeletedAt:    meta.DeletedAt,
		Fallback:     true,
	}, nil
}

func (b *fallbackBackend) List() ([]Item, error) {
	entries, err := os.ReadDir(b.rootDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, newError(ErrorCodeTrashFailed, "unable to list staged trash entries: %s", err.Error())
	}

	var items []Item
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entryDir := filepath.Join(b.rootDir(), entry.Name())
		meta, err := readFallbackMeta(entryDir)
		if err != nil {
			b.logger.Warnf("skipping unreadable staged trash entry %s: %s", entryDir, err.Error())
			continue
		}
		contentPath := filepath.Join(entryDir, filepath.Base(meta.OriginalPath))
		items = append(items, Item{
			ID:           entry.Name(),
			OriginalPath: meta.OriginalPath,
			TrashedPath:  contentPath,
			IsDir:        meta.IsDir,
			Size:         meta.Size,
			DeletedAt:    meta.DeletedAt,
			Fallback:     true,
		})
	}
	return items, nil
}

func (b *fallbackBackend) Restore(item Item) error {
	if err := fspath.EnsureNoSymlinkComponentsExistingPrefix(filepath.Dir(item.OriginalPath)); err != nil {
		return err
	}
	if _, err := os.Lstat(item.OriginalPath); err == nil {
		return newError(ErrorCodeInvalidInput, "restore target already exists: %s", item.OriginalPath)
	}
	if err := os.MkdirAll(filepath.Dir(item.OriginalPath), 0755); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to recreate parent directory for %s: %s", item.OriginalPath, err.Error())
	}

	if err := restoreFromStaging(item.TrashedPath, item.OriginalPath, item.IsDir); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(b.rootDir(), item.ID))
}

func (b *fallbackBackend) Purge(item Item) error {
	if err := os.RemoveAll(filepath.Join(b.rootDir(), item.ID)); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to purge staged entry %s: %s", item.ID, err.Error())
	}
	return nil
}

func writeFallbackMeta(entryDir string, meta fallbackMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return newError(ErrorCodeTrashFailed, "unable to encode staged trash metadata: %s", err.Error())
	}
	path := filepath.Join(entryDir, "meta.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to write staged trash metadata: %s", err.Error())
	}
	return nil
}

func readFallbackMeta(entryDir string) (fallbackMeta, error) {
	data, err := os.ReadFile(filepath.Join(entryDir, "meta.json"))
	if err != nil {
		return fallbackMeta{}, err
	}
	var meta fallbackMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return fallbackMeta{}, err
	}
	return meta, nil
}

// moveIntoStaging moves src (file or directory tree) to dst, which must not
// already exist. It copies rather than renames whenever the two paths are
// on different volumes.
func moveIntoStaging(src, dst string, isDir bool) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !fspath.IsCrossDeviceError(err) {
		return newError(ErrorCodeTrashFailed, "unable to stage %s: %s", src, err.Error())
	}

	if isDir {
		if err := copyDirRecursive(src, dst); err != nil {
			return newError(ErrorCodeTrashFailed, "unable to stage directory %s: %s", src, err.Error())
		}
	} else if err := transfer.CopyFile(src, dst, false, nil, nil, nil); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to stage %s: %s", src, err.Error())
	}
	if err := os.RemoveAll(src); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to remove original after staging %s: %s", src, err.Error())
	}
	return nil
}

// restoreFromStaging is moveIntoStaging's inverse.
func restoreFromStaging(src, dst string, isDir bool) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !fspath.IsCrossDeviceError(err) {
		return newError(ErrorCodeTrashFailed, "unable to restore %s: %s", dst, err.Error())
	}

	if isDir {
		if err := copyDirRecursive(src, dst); err != nil {
			return newError(ErrorCodeTrashFailed, "unable to restore directory %s: %s", dst, err.Error())
		}
	} else if err := transfer.CopyFile(src, dst, false, nil, nil, nil); err != nil {
		return newError(ErrorCodeTrashFailed, "unable to restore %s: %s", dst, err.Error())
	}
	return os.RemoveAll(src)
}

// copyDirRecursive copies an entire directory tree from src to dst, which
// must not already exist. It's the directory counterpart to
// transfer.CopyFile, needed here because a trashed path can sit on a
// different volume from the trash or staging directory, where a plain
// os.Rename fails for a directory.
func copyDirRecursive(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childSrc := filepath.Join(src, entry.Name())
		childDst := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDirRecursive(childSrc, childDst); err != nil {
				return err
			}
			continue
		}
		if err := transfer.CopyFile(childSrc, childDst, false, nil, nil, nil); err != nil {
			return err
		}
	}
	return nil
}
