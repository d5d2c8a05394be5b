// Package core implements the pure, IO-free half of the bookmark sync
// engine: the bookmark/snapshot data model and the three-way diff and
// reconciliation algorithms that operate on it. Nothing in this package
// touches a filesystem, the network, or a subprocess — those concerns live
// in the storage backends and the pair runner that sit above it.
package core

// Bookmark is the live, backend-resident form of a bookmark. ID is
// backend-local: it is meaningful only when addressing this bookmark for
// update/delete on the backend that produced it, and must never be carried
// across to the other side without rebinding (see Reconcile).
type Bookmark struct {
	// ID is an opaque, backend-local identifier.
	ID uint64
	// Path is the logical identity of the bookmark: a '/'-separated string
	// whose last segment is the title and whose prefix is a folder chain.
	Path string
	// URL is the bookmark target. It is the only field whose change is
	// considered a modification; a changed LastModified with an unchanged
	// URL is treated as unchanged.
	URL string
	// LastModified is a Unix-seconds timestamp.
	LastModified int64
}

// SnapshotBookmark is the persisted form of a bookmark. IDs are deliberately
// excluded: a path can correspond to different ids on each side, and
// rebinding is always done against a fresh listing rather than a stored id.
// The json tags fix the on-disk wire format: a bare array of these is what
// gets written to the state file, one object per line item, field name
// "name" rather than "path".
type SnapshotBookmark struct {
	Path         string `json:"name"`
	URL          string `json:"url"`
	LastModified int64  `json:"lastmodified"`
}

// Snapshot is the last-synced state used as the common ancestor for the next
// three-way diff. At is never itself persisted; it is derived from the state
// file's own modification time when the snapshot is loaded.
type Snapshot struct {
	At        int64
	Bookmarks []SnapshotBookmark
}

// byPath indexes a snapshot's bookmarks by path. Per spec, duplicate paths
// within a side silently collapse to the last entry seen, matching ordinary
// Go map-construction semantics; this is documented as undefined behavior,
// not guarded against.
func (s *Snapshot) byPath() map[string]SnapshotBookmark {
	index := make(map[string]SnapshotBookmark, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		index[b.Path] = b
	}
	return index
}

// Changes is the set of changes to be applied to one side of a pair,
// expressed relative to that side's current state.
type Changes struct {
	// New holds bookmarks to be created, keyed by path. ID is always zero:
	// it will be assigned by the destination backend.
	New map[string]Bookmark
	// Changed holds bookmarks whose URL must be updated, keyed by path.
	// ID is destination-local, set by rebinding.
	Changed map[string]Bookmark
	// Deleted holds paths to remove, mapping to the destination-local id to
	// delete.
	Deleted map[string]uint64
}

// newChanges returns an empty, non-nil Changes value.
func newChanges() Changes {
	return Changes{
		New:     make(map[string]Bookmark),
		Changed: make(map[string]Bookmark),
		Deleted: make(map[string]uint64),
	}
}

// IsEmpty reports whether the change set has nothing to apply.
func (c Changes) IsEmpty() bool {
	return len(c.New) == 0 && len(c.Changed) == 0 && len(c.Deleted) == 0
}

// Update is the result of a diff: the changes to push to each side and the
// snapshot to persist once both sides have applied their changes.
type Update struct {
	ForA        Changes
	ForB        Changes
	NewSnapshot []SnapshotBookmark
}

// indexByPath builds a path-keyed index of a bookmark listing, following the
// same last-write-wins semantics as Snapshot.byPath for duplicate paths.
func indexByPath(bookmarks []Bookmark) map[string]Bookmark {
	index := make(map[string]Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		index[b.Path] = b
	}
	return index
}
