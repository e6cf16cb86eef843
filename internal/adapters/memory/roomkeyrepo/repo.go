package roomkeyrepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/roomkeyrepo"
	roomrepoport "github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

// Repo is an in-memory implementation of roomkeyrepo.Repository.
//
// The parent room's owner is resolved through the rooms repository on every
// GetWithOwner, mirroring the SQL join: ownership is never stored on the key.
// It is safe for concurrent use.
type Repo struct {
	rooms roomrepoport.Repository

	mu     sync.RWMutex
	nextID domain.RoomKeyID
	keys   map[domain.RoomKeyID]keyRow
}

type keyRow struct {
	roomID    domain.RoomID
	code      string
	createdAt time.Time
}

func NewRepo(rooms roomrepoport.Repository) *Repo {
	return &Repo{
		rooms: rooms,
		keys:  make(map[domain.RoomKeyID]keyRow),
	}
}

func (r *Repo) Create(ctx context.Context, roomID domain.RoomID, code string, createdAt time.Time) (domain.RoomKeyID, error) {
	if _, err := r.rooms.Get(ctx, roomID); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.keys[r.nextID] = keyRow{roomID: roomID, code: code, createdAt: createdAt}
	return r.nextID, nil
}

func (r *Repo) GetWithOwner(ctx context.Context, id domain.RoomKeyID) (roomkeyrepo.RoomKey, error) {
	r.mu.RLock()
	row, ok := r.keys[id]
	r.mu.RUnlock()
	if !ok {
		return roomkeyrepo.RoomKey{}, roomkeyrepo.ErrNotFound
	}

	room, err := r.rooms.Get(ctx, row.roomID)
	if err != nil {
		if errors.Is(err, roomrepoport.ErrNotFound) {
			return roomkeyrepo.RoomKey{}, roomkeyrepo.ErrNotFound
		}
		return roomkeyrepo.RoomKey{}, err
	}
	return roomkeyrepo.RoomKey{
		ID:          id,
		RoomID:      row.roomID,
		RoomOwnerID: room.OwnerID,
		Code:        row.code,
		CreatedAt:   row.createdAt,
	}, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.RoomKeyID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys[id]; !ok {
		return roomkeyrepo.ErrNotFound
	}
	delete(r.keys, id)
	return nil
}
