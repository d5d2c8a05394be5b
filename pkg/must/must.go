// Package must provides best-effort cleanup helpers for operations whose
// errors are not actionable at the call site (e.g. cleaning up a temporary
// file after an earlier error has already been reported). They log a warning
// on failure rather than returning an error or panicking.
package must

import (
	"io"
	"os"

	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
)

// Close closes c, logging a warning if it fails.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// OSRemove removes the named file, logging a warning if it fails.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}
