// Package bookmarksync ties the diff engine in pkg/bookmarksync/core
// together with a pair of storage backends and the on-disk snapshot that
// anchors their three-way diffs.
package bookmarksync

import (
	"context"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
)

// Storage is the capability a sync side must provide. There are exactly two
// implementations, file and nextcloud; the pair runner never branches on
// which one it is holding.
type Storage interface {
	// List returns every bookmark currently held by this side.
	List(ctx context.Context) ([]core.Bookmark, error)

	// Apply pushes a change set to this side and, on success, the side's
	// durable state should now match newSnapshot. Implementations that
	// cannot address individual changes (FileStorage) ignore changes and
	// rewrite their full state from newSnapshot instead.
	Apply(ctx context.Context, changes core.Changes, newSnapshot []core.SnapshotBookmark) error
}
