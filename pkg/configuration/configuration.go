package configuration

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
	"github.com/stefanboere/nc-bookmark-sync/pkg/encoding"
)

// StorageType selects a storage backend implementation.
type StorageType uint8

const (
	// StorageTypeFile selects the file-backed storage.
	StorageTypeFile StorageType = iota
	// StorageTypeNextcloud selects the Nextcloud Bookmarks storage.
	StorageTypeNextcloud
)

// UnmarshalText allows StorageType to be decoded directly from TOML.
func (t *StorageType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*t = StorageTypeFile
	case "nextcloud":
		*t = StorageTypeNextcloud
	default:
		return fmt.Errorf("unknown storage type: %q", text)
	}
	return nil
}

// MarshalText allows StorageType to be encoded directly to TOML.
func (t StorageType) MarshalText() ([]byte, error) {
	switch t {
	case StorageTypeFile:
		return []byte("file"), nil
	case StorageTypeNextcloud:
		return []byte("nextcloud"), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %d", t)
	}
}

// Command is a credential helper: a shell command whose trimmed stdout
// supplies a secret, so that plaintext passwords never need to appear in
// the configuration file.
type Command struct {
	Fetch []string `toml:"fetch"`
}

// Value runs Fetch[0] with Fetch[1:] as arguments and returns its trimmed,
// UTF-8-validated stdout. A nil Command is not valid to call Value on;
// callers should treat an absent *Command as "no credential configured".
func (c *Command) Value(ctx context.Context) (string, error) {
	if len(c.Fetch) == 0 {
		return "", &bmerrors.MissingConfigError{Field: "fetch"}
	}

	cmd := exec.CommandContext(ctx, c.Fetch[0], c.Fetch[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", &bmerrors.SubprocessError{Context: strings.Join(c.Fetch, " "), Err: err}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", &bmerrors.SubprocessError{
			Context: strings.Join(c.Fetch, " "),
			Err:     fmt.Errorf("output is not valid UTF-8"),
		}
	}

	return strings.TrimRight(stdout.String(), "\r\n\t "), nil
}

// StorageConfig describes one named storage backend.
type StorageConfig struct {
	Type     StorageType `toml:"type"`
	URL      string      `toml:"url"`
	Path     string      `toml:"path"`
	Username *Command    `toml:"username"`
	Password *Command    `toml:"password"`
}

// PairConfig binds two named storages together.
type PairConfig struct {
	A                  string                  `toml:"a"`
	B                  string                  `toml:"b"`
	ConflictResolution core.ConflictResolution `toml:"conflict_resolution"`
}

// GeneralConfig holds settings shared across all pairs.
type GeneralConfig struct {
	StatusPath string `toml:"status_path"`
}

// Config is the root of a bmsync configuration file.
type Config struct {
	General GeneralConfig            `toml:"general"`
	Pair    map[string]PairConfig    `toml:"pair"`
	Storage map[string]StorageConfig `toml:"storage"`
}

// Load reads and parses the TOML configuration file at path.
func Load(path string) (*Config, error) {
	result := &Config{}
	if err := encoding.LoadAndUnmarshalTOML(path, result); err != nil {
		return nil, err
	}
	return result, nil
}
