package roomkeyrepo

import (
	"context"
	"time"

	"github.com/petorang/superpet-api/internal/domain"
)

// RoomKey is the persistence shape of a room access key.
//
// RoomOwnerID is not stored on the key: it is resolved through the parent room
// at read time so authorization always sees the canonical owner.
type RoomKey struct {
	ID          domain.RoomKeyID
	RoomID      domain.RoomID
	RoomOwnerID domain.MemberID
	Code        string
	CreatedAt   time.Time
}

type Repository interface {
	// Create stores a key for a room and returns its assigned id.
	Create(ctx context.Context, roomID domain.RoomID, code string, createdAt time.Time) (domain.RoomKeyID, error)

	// GetWithOwner loads a key together with its parent room's owner, joined
	// at call time. Returns ErrNotFound when the key does not exist.
	GetWithOwner(ctx context.Context, id domain.RoomKeyID) (RoomKey, error)

	// Delete removes a key permanently. Returns ErrNotFound when the key does
	// not exist.
	Delete(ctx context.Context, id domain.RoomKeyID) error
}
