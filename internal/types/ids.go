package types

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotID represents a UUIDv7 identifier for one stored settings
// document version. String alias enables type safety while maintaining
// JSON string serialization; UUIDv7 time-ordering ensures sequential
// snapshots cluster in B-tree indexes.
type SnapshotID string

// NewSnapshotID generates a UUIDv7 snapshot identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewSnapshotID() SnapshotID {
	return SnapshotID(uuid.Must(uuid.NewV7()).String())
}

// ParseSnapshotID validates and converts a string to SnapshotID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseSnapshotID(s string) (SnapshotID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return SnapshotID(s), nil
}

// SnapshotIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Enables time-based queries without a database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func SnapshotIDTime(id SnapshotID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
