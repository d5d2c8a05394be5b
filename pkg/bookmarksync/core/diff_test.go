package core

import "testing"

func snap(entries ...SnapshotBookmark) *Snapshot {
	return &Snapshot{Bookmarks: entries}
}

func TestDiffAgainstSnapshotNew(t *testing.T) {
	listing := []Bookmark{{ID: 1, Path: "work/a", URL: "https://a.example"}}
	changes := diffAgainstSnapshot(listing, snap())

	if len(changes.New) != 1 {
		t.Fatalf("expected 1 new entry, got %d", len(changes.New))
	}
	if _, ok := changes.New["work/a"]; !ok {
		t.Fatalf("expected new entry for work/a")
	}
	if len(changes.Changed) != 0 || len(changes.Deleted) != 0 {
		t.Fatalf("expected no changed/deleted entries")
	}
}

func TestDiffAgainstSnapshotChangedOnURL(t *testing.T) {
	listing := []Bookmark{{ID: 1, Path: "work/a", URL: "https://new.example", LastModified: 100}}
	previous := snap(SnapshotBookmark{Path: "work/a", URL: "https://old.example", LastModified: 50})

	changes := diffAgainstSnapshot(listing, previous)

	if len(changes.Changed) != 1 {
		t.Fatalf("expected 1 changed entry, got %d", len(changes.Changed))
	}
	if len(changes.New) != 0 {
		t.Fatalf("expected no new entries")
	}
}

func TestDiffAgainstSnapshotLastModifiedOnlyIsNotChanged(t *testing.T) {
	listing := []Bookmark{{ID: 1, Path: "work/a", URL: "https://same.example", LastModified: 999}}
	previous := snap(SnapshotBookmark{Path: "work/a", URL: "https://same.example", LastModified: 1})

	changes := diffAgainstSnapshot(listing, previous)

	if !changes.IsEmpty() {
		t.Fatalf("expected no changes when only lastmodified differs, got %+v", changes)
	}
}

func TestDiffAgainstSnapshotDeleted(t *testing.T) {
	previous := snap(SnapshotBookmark{Path: "work/a", URL: "https://a.example"})
	changes := diffAgainstSnapshot(nil, previous)

	if len(changes.Deleted) != 1 {
		t.Fatalf("expected 1 deleted entry, got %d", len(changes.Deleted))
	}
	if id, ok := changes.Deleted["work/a"]; !ok || id != 0 {
		t.Fatalf("expected deleted placeholder id 0, got %d, ok=%v", id, ok)
	}
}
