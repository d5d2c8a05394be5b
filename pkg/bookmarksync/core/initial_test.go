package core

import (
	"errors"
	"testing"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
)

func TestReconcileInitialUnionsBothSides(t *testing.T) {
	aListing := []Bookmark{{ID: 1, Path: "only-a", URL: "https://a.example"}}
	bListing := []Bookmark{{ID: 2, Path: "only-b", URL: "https://b.example"}}

	update, err := ReconcileInitial(aListing, bListing, ConflictResolutionError)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := update.ForB.New["only-a"]; !ok {
		t.Fatalf("expected only-a scheduled for B")
	}
	if _, ok := update.ForA.New["only-b"]; !ok {
		t.Fatalf("expected only-b scheduled for A")
	}
	if len(update.NewSnapshot) != 2 {
		t.Fatalf("expected merged snapshot of 2 entries, got %d", len(update.NewSnapshot))
	}
}

func TestReconcileInitialEqualURLsAreNoop(t *testing.T) {
	aListing := []Bookmark{{ID: 1, Path: "shared", URL: "https://shared.example"}}
	bListing := []Bookmark{{ID: 2, Path: "shared", URL: "https://shared.example"}}

	update, err := ReconcileInitial(aListing, bListing, ConflictResolutionError)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !update.ForA.IsEmpty() || !update.ForB.IsEmpty() {
		t.Fatalf("expected no changes for equal urls, got %+v / %+v", update.ForA, update.ForB)
	}
}

func TestReconcileInitialErrorPolicyFailsOnDifferingURL(t *testing.T) {
	aListing := []Bookmark{{ID: 1, Path: "shared", URL: "https://a.example"}}
	bListing := []Bookmark{{ID: 2, Path: "shared", URL: "https://b.example"}}

	_, err := ReconcileInitial(aListing, bListing, ConflictResolutionError)
	var conflict *bmerrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestReconcileInitialAWinsPropagatesMasterURL(t *testing.T) {
	aListing := []Bookmark{{ID: 1, Path: "shared", URL: "https://a.example"}}
	bListing := []Bookmark{{ID: 2, Path: "shared", URL: "https://b.example"}}

	update, err := ReconcileInitial(aListing, bListing, ConflictResolutionAWins)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	changed, ok := update.ForB.Changed["shared"]
	if !ok {
		t.Fatalf("expected B to receive a changed entry for the conflicting path")
	}
	if changed.ID != 2 {
		t.Fatalf("expected B's own id 2 to be preserved, got %d", changed.ID)
	}
	if changed.URL != "https://a.example" {
		t.Fatalf("expected master A's url to win, got %q", changed.URL)
	}
	if update.NewSnapshot[0].URL != "https://a.example" {
		t.Fatalf("expected new snapshot to carry master's url")
	}
}

func TestReconcileInitialBWinsSelectsB(t *testing.T) {
	aListing := []Bookmark{{ID: 1, Path: "shared", URL: "https://a.example"}}
	bListing := []Bookmark{{ID: 2, Path: "shared", URL: "https://b.example"}}

	update, err := ReconcileInitial(aListing, bListing, ConflictResolutionBWins)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	changed, ok := update.ForA.Changed["shared"]
	if !ok {
		t.Fatalf("expected A to receive a changed entry for the conflicting path")
	}
	if changed.URL != "https://b.example" {
		t.Fatalf("expected master B's url to win, got %q", changed.URL)
	}
}
