// Package filesystem provides small filesystem helpers used by the snapshot
// store (through pkg/encoding). The storage backends do not use it.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
	"github.com/stefanboere/nc-bookmark-sync/pkg/must"
)

// atomicWriteTemporaryNamePrefix is the file name prefix used for the
// intermediate temporary file in an atomic write.
const atomicWriteTemporaryNamePrefix = ".bmsync-write-"

// WriteFileAtomic writes data to path using an intermediate temporary file in
// the same directory, swapped into place with a rename, so that readers never
// observe a partially written file. The parent directory is created if it
// does not already exist.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode, logger *logging.Logger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create parent directory: %w", err)
	}

	temporary, err := os.CreateTemp(dir, atomicWriteTemporaryNamePrefix)
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}

	if _, err = temporary.Write(data); err != nil {
		must.Close(temporary, logger)
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to write data to temporary file: %w", err)
	}

	if err = temporary.Close(); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err = os.Chmod(temporary.Name(), permissions); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to change file permissions: %w", err)
	}

	if err = os.Rename(temporary.Name(), path); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to rename temporary file into place: %w", err)
	}

	return nil
}
