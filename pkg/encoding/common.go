// Package encoding provides small load/save helpers used by the
// configuration loader and the snapshot store.
package encoding

import (
	"fmt"
	"os"

	"github.com/stefanboere/nc-bookmark-sync/pkg/filesystem"
	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
)

// LoadAndUnmarshal reads the data at the specified path and invokes the
// specified unmarshaling callback (usually a closure) to decode it. A
// not-exist error is returned unwrapped so that callers can test for it with
// os.IsNotExist.
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("unable to load file: %w", err)
	}

	if err := unmarshal(data); err != nil {
		return fmt.Errorf("unable to unmarshal data: %w", err)
	}

	return nil
}

// MarshalAndSave invokes the specified marshaling callback (usually a
// closure) and writes the result atomically to the specified path, creating
// the parent directory if necessary. The data is saved with read/write
// permissions for the user only.
func MarshalAndSave(path string, logger *logging.Logger, marshal func() ([]byte, error)) error {
	data, err := marshal()
	if err != nil {
		return fmt.Errorf("unable to marshal message: %w", err)
	}

	if err := filesystem.WriteFileAtomic(path, data, 0o600, logger); err != nil {
		return fmt.Errorf("unable to write message data: %w", err)
	}

	return nil
}
