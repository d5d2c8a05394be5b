package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
)

func TestStorageListMissingFileIsEmpty(t *testing.T) {
	s := &Storage{Path: filepath.Join(t.TempDir(), "does-not-exist.txt")}

	bookmarks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(bookmarks))
	}
}

func TestStorageListSplitsOnLastWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.txt")
	content := "work/client meeting notes https://example.com/notes\npersonal/a https://example.com/a\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := &Storage{Path: path}
	bookmarks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}
	if bookmarks[0].Path != "work/client meeting notes" || bookmarks[0].URL != "https://example.com/notes" {
		t.Fatalf("unexpected first bookmark: %+v", bookmarks[0])
	}
	if bookmarks[1].ID != 1 {
		t.Fatalf("expected second bookmark's id to be its line index, got %d", bookmarks[1].ID)
	}
}

func TestStorageListLineWithNoWhitespaceIsPathOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.txt")
	content := "justapath\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := &Storage{Path: path}
	bookmarks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}
	if bookmarks[0].Path != "justapath" || bookmarks[0].URL != "" {
		t.Fatalf("expected whole line as path with empty url, got %+v", bookmarks[0])
	}
}

func TestStorageApplyIgnoresChangesAndWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.txt")
	s := &Storage{Path: path}

	snapshot := []core.SnapshotBookmark{
		{Path: "a", URL: "https://a.example"},
		{Path: "b", URL: "https://b.example"},
	}
	if err := s.Apply(context.Background(), core.Changes{}, snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	expected := "a https://a.example\nb https://b.example\n"
	if string(data) != expected {
		t.Fatalf("unexpected file content: %q", string(data))
	}
}
