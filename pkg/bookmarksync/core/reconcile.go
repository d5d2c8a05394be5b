package core

import (
	"sort"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
)

// conflictingNewPaths returns the paths present in both category maps, in
// sorted order so that conflict reporting is deterministic.
func conflictingNewPaths(a, b map[string]Bookmark) []string {
	var paths []string
	for path := range a {
		if _, ok := b[path]; ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

func conflictingDeletedPaths(a, b map[string]uint64) []string {
	var paths []string
	for path := range a {
		if _, ok := b[path]; ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// resolveNewConflicts (used for the new and changed categories) and
// resolveDeletedConflicts handle the spec §4.2 step 2 conflict rule for a
// single change category (new, changed, or deleted are each checked
// independently; cross-category overlap is not a conflict). Under the
// "error" policy it returns a Conflict for the first conflicting path found
// (in sorted order, for determinism). Under a-wins/b-wins it removes the
// losing side's entries in place.
func resolveNewConflicts(policy ConflictResolution, a, b map[string]Bookmark) error {
	for _, path := range conflictingNewPaths(a, b) {
		switch policy {
		case ConflictResolutionError:
			return &bmerrors.ConflictError{Path: path}
		case ConflictResolutionAWins:
			delete(b, path)
		case ConflictResolutionBWins:
			delete(a, path)
		}
	}
	return nil
}

func resolveDeletedConflicts(policy ConflictResolution, a, b map[string]uint64) error {
	for _, path := range conflictingDeletedPaths(a, b) {
		switch policy {
		case ConflictResolutionError:
			return &bmerrors.ConflictError{Path: path}
		case ConflictResolutionAWins:
			delete(b, path)
		case ConflictResolutionBWins:
			delete(a, path)
		}
	}
	return nil
}

// rebind translates a change set's ids from source-local to
// destination-local, per spec §4.2 step 3: changed and deleted entries must
// carry the id that their path has on the opposite side, since that's the
// side the change set will be applied to. For changed, the path is
// present on the opposite side unless that side deleted it (cross-category
// overlap); for deleted, the path is present on the opposite side unless
// that side deleted it too and the a-wins/b-wins policy kept the winning
// side's deleted entry in step 2. In those cases the lookup misses and an
// InternalInconsistencyError is returned.
func rebind(changes Changes, destinationIndex map[string]Bookmark) error {
	for path, bookmark := range changes.Changed {
		destination, ok := destinationIndex[path]
		if !ok {
			return &bmerrors.InternalInconsistencyError{
				Context: "rebinding changed entry: path " + path + " missing from destination listing",
			}
		}
		bookmark.ID = destination.ID
		changes.Changed[path] = bookmark
	}
	for path := range changes.Deleted {
		destination, ok := destinationIndex[path]
		if !ok {
			return &bmerrors.InternalInconsistencyError{
				Context: "rebinding deleted entry: path " + path + " missing from destination listing",
			}
		}
		changes.Deleted[path] = destination.ID
	}
	return nil
}

// projectSnapshot builds the post-sync snapshot per spec §4.2 step 4: start
// from A's listing, apply B's (already conflict-resolved, pre-rebind) delta
// on top, and project to snapshot form.
func projectSnapshot(aListing []Bookmark, deltaB Changes) []SnapshotBookmark {
	state := indexByPath(aListing)

	for path, bookmark := range deltaB.New {
		state[path] = bookmark
	}
	for path, bookmark := range deltaB.Changed {
		state[path] = bookmark
	}
	for path := range deltaB.Deleted {
		delete(state, path)
	}

	result := make([]SnapshotBookmark, 0, len(state))
	for _, bookmark := range state {
		result = append(result, SnapshotBookmark{
			Path:         bookmark.Path,
			URL:          bookmark.URL,
			LastModified: bookmark.LastModified,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// Reconcile performs the three-way diff and conflict resolution described in
// spec §4.2 against a previously persisted snapshot. It returns the change
// sets to apply to each side (already swapped: ForA carries B's changes and
// vice versa, since each side receives the *other* side's deltas) and the
// new snapshot to persist once both applies succeed.
func Reconcile(snapshot *Snapshot, aListing, bListing []Bookmark, policy ConflictResolution) (*Update, error) {
	deltaA := diffAgainstSnapshot(aListing, snapshot)
	deltaB := diffAgainstSnapshot(bListing, snapshot)

	if err := resolveNewConflicts(policy, deltaA.New, deltaB.New); err != nil {
		return nil, err
	}
	if err := resolveNewConflicts(policy, deltaA.Changed, deltaB.Changed); err != nil {
		return nil, err
	}
	if err := resolveDeletedConflicts(policy, deltaA.Deleted, deltaB.Deleted); err != nil {
		return nil, err
	}

	// Step 4 needs deltaB's new/changed/deleted maps after conflict
	// resolution has dropped the losing side's entries; rebind below only
	// rewrites ids, so the path/URL content projectSnapshot reads is already
	// final at this point.
	newSnapshot := projectSnapshot(aListing, deltaB)

	aIndex := indexByPath(aListing)
	bIndex := indexByPath(bListing)

	if err := rebind(deltaA, bIndex); err != nil {
		return nil, err
	}
	if err := rebind(deltaB, aIndex); err != nil {
		return nil, err
	}

	return &Update{
		ForA:        deltaB,
		ForB:        deltaA,
		NewSnapshot: newSnapshot,
	}, nil
}
