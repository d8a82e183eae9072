package rclone

import (
	"context"

	"github.com/browsey/browsey/pkg/cloudpath"
)

// ListDir lists the immediate children of path, sorted directories-first
// then case-sensitive by name.
func (b *Broker) ListDir(ctx context.Context, path cloudpath.Path) ([]Entry, error) {
	stdout, err := b.run(ctx, "lsjson", "--no-modtime=false", "--fast-list", path.String())
	if err != nil {
		return nil, err
	}
	return parseLsjsonItems([]byte(stdout), path.String())
}

// Stat returns the entry at path, or (Entry{}, false, nil) if it doesn't
// exist.
func (b *Broker) Stat(ctx context.Context, path cloudpath.Path) (Entry, bool, error) {
	stdout, err := b.run(ctx, "lsjson", "--stat", path.String())
	if err != nil {
		return Entry{}, false, err
	}
	return parseLsjsonStatItem([]byte(stdout), path.String())
}
