package core

import (
	"sort"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
)

// ReconcileInitial performs the blind-union diff described in spec §4.3,
// used when no prior snapshot exists. One side is designated master: its
// url wins on a conflicting path, and the new snapshot reflects its merged
// state. Under the "error" policy A is master, but a differing url on a
// shared path aborts the run rather than being resolved.
func ReconcileInitial(aListing, bListing []Bookmark, policy ConflictResolution) (*Update, error) {
	masterIsA := policy != ConflictResolutionBWins

	var master, slave []Bookmark
	if masterIsA {
		master, slave = aListing, bListing
	} else {
		master, slave = bListing, aListing
	}

	masterIndex := indexByPath(master)
	slaveIndex := indexByPath(slave)

	newForSlave := newChanges()
	newForMaster := newChanges()

	var paths []string
	for path := range masterIndex {
		paths = append(paths, path)
	}
	for path := range slaveIndex {
		if _, ok := masterIndex[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	state := make(map[string]Bookmark, len(paths))

	for _, path := range paths {
		masterBookmark, onMaster := masterIndex[path]
		slaveBookmark, onSlave := slaveIndex[path]

		switch {
		case onMaster && !onSlave:
			newForSlave.New[path] = Bookmark{Path: path, URL: masterBookmark.URL, LastModified: masterBookmark.LastModified}
			state[path] = masterBookmark
		case onSlave && !onMaster:
			newForMaster.New[path] = Bookmark{Path: path, URL: slaveBookmark.URL, LastModified: slaveBookmark.LastModified}
			state[path] = slaveBookmark
		case masterBookmark.URL == slaveBookmark.URL:
			state[path] = masterBookmark
		default:
			if policy == ConflictResolutionError {
				return nil, &bmerrors.ConflictError{Path: path}
			}
			newForSlave.Changed[path] = Bookmark{
				ID:           slaveBookmark.ID,
				Path:         path,
				URL:          masterBookmark.URL,
				LastModified: masterBookmark.LastModified,
			}
			state[path] = masterBookmark
		}
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

	update := &Update{NewSnapshot: result}
	if masterIsA {
		update.ForA = newForMaster
		update.ForB = newForSlave
	} else {
		update.ForA = newForSlave
		update.ForB = newForMaster
	}
	return update, nil
}
