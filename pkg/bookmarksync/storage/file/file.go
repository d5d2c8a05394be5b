// Package file implements the bookmarksync.Storage interface against a
// plain text file, one "path SP url" line per bookmark.
package file

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
)

// Storage is a file-backed bookmarksync.Storage. It has no notion of ids:
// List assigns the line index as a throwaway id, and Apply ignores the
// incoming change set entirely, rewriting the whole file from the new
// snapshot instead.
type Storage struct {
	Path string
}

// List reads Path and returns one Bookmark per non-empty line, splitting
// each line at its last whitespace run into path and url. A missing file is
// not an error: it is treated as an empty listing. Every entry's
// LastModified is the file's modification time.
func (s *Storage) List(ctx context.Context) ([]core.Bookmark, error) {
	info, err := os.Stat(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, &bmerrors.IOError{Context: "stat " + s.Path, Err: err}
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &bmerrors.IOError{Context: "read " + s.Path, Err: err}
	}

	lastModified := info.ModTime().Unix()

	var bookmarks []core.Bookmark
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var index uint64
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		path, url := splitLastWhitespace(line)
		bookmarks = append(bookmarks, core.Bookmark{
			ID:           index,
			Path:         path,
			URL:          url,
			LastModified: lastModified,
		})
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, &bmerrors.IOError{Context: "scan " + s.Path, Err: err}
	}

	return bookmarks, nil
}

// splitLastWhitespace splits line at the last whitespace run into a path and
// a url. A line with no whitespace (or one that fails to split into two
// non-empty halves) becomes the entire trimmed line as path, with an empty
// url.
func splitLastWhitespace(line string) (path, url string) {
	trimmed := strings.TrimRight(line, " \t")
	idx := strings.LastIndexAny(trimmed, " \t")
	if idx < 0 {
		return trimmed, ""
	}
	path = strings.TrimRight(trimmed[:idx], " \t")
	url = strings.TrimLeft(trimmed[idx+1:], " \t")
	if path == "" || url == "" {
		return trimmed, ""
	}
	return path, url
}

// Apply ignores changes and rewrites Path with one "path SP url" line per
// entry in newSnapshot, creating the parent directory if it doesn't exist.
// The write is a plain create+write, not atomic: a crash mid-write can leave
// a truncated file.
func (s *Storage) Apply(ctx context.Context, changes core.Changes, newSnapshot []core.SnapshotBookmark) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &bmerrors.IOError{Context: "mkdir " + dir, Err: err}
	}

	var buf bytes.Buffer
	for _, bookmark := range newSnapshot {
		buf.WriteString(bookmark.Path)
		buf.WriteByte(' ')
		buf.WriteString(bookmark.URL)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return &bmerrors.IOError{Context: "write " + s.Path, Err: err}
	}
	return nil
}
