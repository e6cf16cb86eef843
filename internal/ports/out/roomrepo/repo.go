package roomrepo

import (
	"context"

	"github.com/petorang/superpet-api/internal/domain"
)

// Room is the persistence shape of a member-owned room. Only the fields the
// key-management use cases need are carried here.
type Room struct {
	ID      domain.RoomID
	OwnerID domain.MemberID
	Name    string
}

type Repository interface {
	// Create stores a room and returns its assigned id.
	Create(ctx context.Context, r Room) (domain.RoomID, error)

	// Get returns a room, or ErrNotFound.
	Get(ctx context.Context, id domain.RoomID) (Room, error)
}
