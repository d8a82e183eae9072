package trash

import (
	"sort"

	"github.com/browsey/browsey/pkg/events"
	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/journal"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/staging"
)

// Coordinator is the trash component: move_to_trash, list_trash,
// restore(ids), purge(ids). It prefers the native backend and falls back to
// staging the item under the app's own backup area when the native trash
// refuses a path.
type Coordinator struct {
	native   nativeBackend
	fallback *fallbackBackend
	logger   *logging.Logger
	emitter  *events.Emitter
}

// New creates a Coordinator. emitter may be nil (events are then simply not
// emitted, useful for tests and any caller without a live event sink).
func New(area *staging.Area, logger *logging.Logger, emitter *events.Emitter) *Coordinator {
	return &Coordinator{
		native:   newNativeBackend(logger),
		fallback: newFallbackBackend(area, logger),
		logger:   logger,
		emitter:  emitter,
	}
}

// MoveToTrash moves every path into the trash, preferring the native
// backend and falling back to staging per path independently. It returns
// one journal.TransferAction per successfully trashed path (a Deleted entry
// carrying the original path and the trashed location as its "staged
// backup", so the generic undo stack can restore it) and the first error
// encountered; processing continues across the remaining paths so a single
// bad path doesn't block the rest of the batch.
func (c *Coordinator) MoveToTrash(paths []string) ([]journal.TransferAction, error) {
	if len(paths) == 0 {
		return nil, newError(ErrorCodeInvalidInput, "move_to_trash requires at least one path")
	}

	var actions []journal.TransferAction
	var firstErr error

	for _, path := range paths {
		if _, err := fspath.EnsureExistingPathNonsymlink(path); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		snap, snapErr := fspath.Snapshot(path)
		if snapErr != nil {
			if firstErr == nil {
				firstErr = snapErr
			}
			continue
		}

		item, err := c.native.MoveToTrash(path)
		if err != nil {
			c.logger.Debugf("native trash refused %s, falling back to staging: %s", path, err.Error())
			item, err = c.fallback.MoveToTrash(path)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		actions = append(actions, journal.NewDeleted(item.OriginalPath, item.TrashedPath, snap))
	}

	c.emitChanged()
	return actions, firstErr
}

// ListTrash returns every item currently in the trash (native and staged
// fallback combined), ordered per sort.
func (c *Coordinator) ListTrash(sortSpec SortSpec) ([]Item, error) {
	native, err := c.native.List()
	if err != nil {
		return nil, err
	}
	staged, err := c.fallback.List()
	if err != nil {
		return nil, err
	}

	items := append(native, staged...)
	sortItems(items, sortSpec)
	return items, nil
}

// Restore moves every identified item back to its original location. If
// no id matches an item, ErrorCodeInvalidInput is returned and nothing is
// restored; otherwise ids that match nothing are ignored and the matching
// items are restored.
func (c *Coordinator) Restore(ids []string) error {
	items, err := c.findByID(ids)
	if err != nil {
		return err
	}

	var firstErr error
	for _, item := range items {
		var restoreErr error
		if item.Fallback {
			restoreErr = c.fallback.Restore(item)
		} else {
			restoreErr = c.native.Restore(item)
		}
		if restoreErr != nil && firstErr == nil {
			firstErr = restoreErr
		}
	}

	c.emitChanged()
	return firstErr
}

// Purge permanently deletes every identified item.
func (c *Coordinator) Purge(ids []string) error {
	items, err := c.findByID(ids)
	if err != nil {
		return err
	}

	var firstErr error
	for _, item := range items {
		var purgeErr error
		if item.Fallback {
			purgeErr = c.fallback.Purge(item)
		} else {
			purgeErr = c.native.Purge(item)
		}
		if purgeErr != nil && firstErr == nil {
			firstErr = purgeErr
		}
	}

	c.emitChanged()
	return firstErr
}

func (c *Coordinator) findByID(ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return nil, newError(ErrorCodeInvalidInput, "at least one id is required")
	}

	all, err := c.ListTrash(SortSpec{})
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var selected []Item
	for _, item := range all {
		if wanted[item.ID] {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return nil, newError(ErrorCodeInvalidInput, "no matching trash items for the given ids")
	}
	return selected, nil
}

func (c *Coordinator) emitChanged() {
	if c.emitter != nil {
		c.emitter.Emit("trash-changed", events.TrashChangedPayload{})
	}
}

func sortItems(items []Item, spec SortSpec) {
	less := func(i, j int) bool {
		switch spec.Field {
		case SortByName:
			return items[i].OriginalPath < items[j].OriginalPath
		case SortBySize:
			return items[i].Size < items[j].Size
		default:
			return items[i].DeletedAt.Before(items[j].DeletedAt)
		}
	}
	if spec.Descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(items, less)
}
