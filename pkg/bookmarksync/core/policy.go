package core

import "fmt"

// ConflictResolution selects how the diff engine resolves a conflict: a path
// appearing in the same change category on both sides of a three-way diff,
// or a differing URL for the same path during an initial (no-snapshot) sync.
type ConflictResolution uint8

const (
	// ConflictResolutionError aborts the run on the first conflict.
	ConflictResolutionError ConflictResolution = iota
	// ConflictResolutionAWins propagates A's change over B's on conflict.
	ConflictResolutionAWins
	// ConflictResolutionBWins propagates B's change over A's on conflict.
	ConflictResolutionBWins
)

// String returns the TOML-facing spelling of the resolution policy.
func (r ConflictResolution) String() string {
	switch r {
	case ConflictResolutionError:
		return "error"
	case ConflictResolutionAWins:
		return "a wins"
	case ConflictResolutionBWins:
		return "b wins"
	default:
		return "unknown"
	}
}

// ParseConflictResolution converts a configuration-file spelling to a
// ConflictResolution. An empty string defaults to ConflictResolutionError,
// matching the original configuration format's default.
func ParseConflictResolution(text string) (ConflictResolution, error) {
	switch text {
	case "", "error":
		return ConflictResolutionError, nil
	case "a wins":
		return ConflictResolutionAWins, nil
	case "b wins":
		return ConflictResolutionBWins, nil
	default:
		return 0, fmt.Errorf("unknown conflict resolution policy: %q", text)
	}
}

// UnmarshalText allows ConflictResolution to be decoded directly from TOML.
func (r *ConflictResolution) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictResolution(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText allows ConflictResolution to be encoded directly to TOML.
func (r ConflictResolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
