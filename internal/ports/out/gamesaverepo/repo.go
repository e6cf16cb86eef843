package gamesaverepo

import (
	"context"

	"github.com/petorang/superpet-api/internal/domain"
)

// Save is the persistence shape of a member's game state. Exactly one Save
// exists per member.
type Save struct {
	MemberID domain.MemberID
	// SessionID is the current opaque game session identifier. Any previously
	// issued identifier is invalid the moment this field changes.
	SessionID string
	// Data is the raw JSON save payload; nil when the client has never saved.
	Data []byte
}

// Repository persists game saves keyed by member.
//
// Both write operations must be single atomic create-or-replace writes, never
// read-then-write sequences: concurrent rotations or saves for the same member
// may interleave arbitrarily and must still leave exactly one consistent row.
type Repository interface {
	// RotateSession creates the member's save with the given session id, or
	// replaces only the session id when a save already exists. The payload is
	// untouched.
	RotateSession(ctx context.Context, member domain.MemberID, sessionID string) error

	// PutData creates the member's save with the given payload, or replaces
	// only the payload when a save already exists.
	PutData(ctx context.Context, member domain.MemberID, data []byte) error

	// Get returns the member's save, or ErrNotFound when none exists.
	Get(ctx context.Context, member domain.MemberID) (Save, error)
}
