package roomrepo

import (
	"context"
	"sync"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

// Repo is an in-memory implementation of roomrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	nextID domain.RoomID
	rooms  map[domain.RoomID]roomrepo.Room
}

func NewRepo() *Repo {
	return &Repo{rooms: make(map[domain.RoomID]roomrepo.Room)}
}

func (r *Repo) Create(ctx context.Context, room roomrepo.Room) (domain.RoomID, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	room.ID = r.nextID
	r.rooms[room.ID] = room
	return room.ID, nil
}

func (r *Repo) Get(ctx context.Context, id domain.RoomID) (roomrepo.Room, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return roomrepo.Room{}, roomrepo.ErrNotFound
	}
	return room, nil
}
