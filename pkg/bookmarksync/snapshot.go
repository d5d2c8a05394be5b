package bookmarksync

import (
	"encoding/json"
	"os"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
	"github.com/stefanboere/nc-bookmark-sync/pkg/encoding"
	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
)

// loadSnapshot reads the snapshot at path: a bare JSON array of bookmarks, no
// wrapping object. A missing file is not an error: it returns (nil, nil),
// signalling the pair runner to take the initial-sync path. At is not stored
// in the file; it is the state file's own modification time, read separately
// with os.Stat.
func loadSnapshot(path string) (*core.Snapshot, error) {
	var bookmarks []core.SnapshotBookmark
	err := encoding.LoadAndUnmarshal(path, func(data []byte) error {
		return json.Unmarshal(data, &bookmarks)
	})
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, &bmerrors.ParseError{Context: "loading snapshot " + path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &bmerrors.IOError{Context: "stating snapshot " + path, Err: err}
	}

	return &core.Snapshot{At: info.ModTime().Unix(), Bookmarks: bookmarks}, nil
}

// saveSnapshot persists bookmarks as the new snapshot at path: a bare JSON
// array, matching loadSnapshot's wire format. The timestamp is not part of
// the payload; it is recovered from the file's mtime on the next load.
func saveSnapshot(path string, bookmarks []core.SnapshotBookmark, logger *logging.Logger) error {
	err := encoding.MarshalAndSave(path, logger, func() ([]byte, error) {
		return json.MarshalIndent(bookmarks, "", "  ")
	})
	if err != nil {
		return &bmerrors.IOError{Context: "saving snapshot " + path, Err: err}
	}
	return nil
}
