package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
)

func TestWriteFileAtomicCreatesParent(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "nested", "state.json")

	if err := WriteFileAtomic(target, []byte(`[]`), 0o600, logging.NewLogger(logging.LevelDisabled)); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("unable to read written file: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "state.json")
	logger := logging.NewLogger(logging.LevelDisabled)

	if err := WriteFileAtomic(target, []byte("first"), 0o600, logger); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}
	if err := WriteFileAtomic(target, []byte("second"), 0o600, logger); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("unable to read written file: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten contents, got %q", data)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("unable to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in directory, found %d", len(entries))
	}
}
