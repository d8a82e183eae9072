// Package search implements the recursive name-substring walker: starting
// from a directory, it emits matching entries in batches of 256 via a
// progress callback, decorating each with starred state read once up
// front, and stops on either cancellation or exhaustion — grounded on
// original_source/src/commands/search.rs and search/mod.rs.
//
// Per the modular form's redesign (search/mod.rs's SearchProgress, not the
// monolithic predecessor's), the facets field is modeled but left optional:
// this package never populates it itself, since computing facets is the
// listing subsystem's job and out of scope here; callers that want facets
// attach them before forwarding a Progress to their event sink.
package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/runtime"
)

const batchSize = 256

// Entry is one matching filesystem entry emitted by a search stream.
type Entry struct {
	Name      string
	Path      string
	IsDir     bool
	IsSymlink bool
	Size      int64
	ModTime   int64 // Unix nanoseconds.
	Starred   bool
}

// Facets is left as an opaque payload: pkg/search never constructs one
// itself (it belongs to the out-of-scope listing/facet subsystem), but
// Progress carries the field so a caller that has one on hand can attach
// it before re-emitting.
type Facets = interface{}

// Progress is one batch emitted during a search stream. Facets is nil
// unless a caller has populated it downstream.
type Progress struct {
	Entries []Entry
	Done    bool
	Error   string
	Facets  Facets
}

// StarredLookup reports whether path is in the user's starred set. The
// persisted star store lives outside this module's scope (spec.md lists
// "the persistent settings/bookmarks/stars/recents store" as an external
// collaborator); callers inject whatever backs it.
type StarredLookup interface {
	IsStarred(path string) bool
}

// NoStars is a StarredLookup that never reports a path as starred, for
// callers with no star store wired up.
type NoStars struct{}

func (NoStars) IsStarred(string) bool { return false }

// Emit is called once per batch (including the final batch, which has
// Done set). Implementations must not retain Entries beyond the call.
type Emit func(Progress)

// Stream walks start depth-first, emitting every entry whose filename
// (case-insensitively) contains query's trimmed, case-folded form. An
// empty query after trimming yields a single Done batch with no entries,
// matching the original's "empty needle means nothing to search for"
// behavior. Permission-denied directory reads are logged at debug and
// skipped; other read errors are logged at warn and skipped. The walk
// polls cancel between entries and between directories, returning early
// (with a final Done batch) the moment it's set.
func Stream(start string, query string, stars StarredLookup, cancel runtime.CancelFlag, logger *logging.Logger, emit Emit) {
	if stars == nil {
		stars = NoStars{}
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		emit(Progress{Done: true})
		return
	}

	if err := fspath.EnsureExistingDirNonsymlink(start); err != nil {
		emit(Progress{Done: true, Error: err.Error()})
		return
	}

	seen := make(map[string]bool)
	batch := make([]Entry, 0, batchSize)
	stack := []string{start}

	flush := func(done bool) {
		if len(batch) == 0 && !done {
			return
		}
		entries := batch
		batch = make([]Entry, 0, batchSize)
		emit(Progress{Entries: entries, Done: done})
	}

	for len(stack) > 0 {
		if cancel != nil && cancel.Load() {
			flush(true)
			return
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsPermission(err) {
				logger.Debugf("search read_dir permission denied: dir=%s err=%s", dir, err.Error())
			} else {
				logger.Warnf("search read_dir failed: dir=%s err=%s", dir, err.Error())
			}
			continue
		}

		for _, dirEntry := range entries {
			if cancel != nil && cancel.Load() {
				flush(true)
				return
			}

			childPath := filepath.Join(dir, dirEntry.Name())
			info, err := dirEntry.Info()
			if err != nil {
				continue
			}

			isSymlink := info.Mode()&os.ModeSymlink != 0
			isDir := info.IsDir()
			nameLower := strings.ToLower(dirEntry.Name())

			if strings.Contains(nameLower, needle) {
				if seen[childPath] {
					// Already emitted (shouldn't happen given the walk
					// never revisits a path, but guards against symlink
					// loops surfacing the same target twice).
				} else {
					seen[childPath] = true
					batch = append(batch, Entry{
						Name:      dirEntry.Name(),
						Path:      childPath,
						IsDir:     isDir,
						IsSymlink: isSymlink,
						Size:      info.Size(),
						ModTime:   info.ModTime().UnixNano(),
						Starred:   stars.IsStarred(childPath),
					})
					if len(batch) >= batchSize {
						flush(false)
					}
				}
			}

			if isDir && !isSymlink {
				stack = append(stack, childPath)
			}
		}
	}

	flush(false)
	flush(true)
}
