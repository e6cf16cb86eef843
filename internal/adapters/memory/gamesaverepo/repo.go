package gamesaverepo

import (
	"context"
	"sync"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
)

// Repo is an in-memory implementation of gamesaverepo.Repository.
// It is safe for concurrent use; each write holds the lock for the whole
// create-or-replace, so writes never interleave partially.
type Repo struct {
	mu    sync.RWMutex
	saves map[domain.MemberID]gamesaverepo.Save
}

func NewRepo() *Repo {
	return &Repo{saves: make(map[domain.MemberID]gamesaverepo.Save)}
}

func (r *Repo) RotateSession(ctx context.Context, member domain.MemberID, sessionID string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	save := r.saves[member]
	save.MemberID = member
	save.SessionID = sessionID
	r.saves[member] = save
	return nil
}

func (r *Repo) PutData(ctx context.Context, member domain.MemberID, data []byte) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	save := r.saves[member]
	save.MemberID = member
	save.Data = append([]byte(nil), data...)
	r.saves[member] = save
	return nil
}

func (r *Repo) Get(ctx context.Context, member domain.MemberID) (gamesaverepo.Save, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	save, ok := r.saves[member]
	if !ok {
		return gamesaverepo.Save{}, gamesaverepo.ErrNotFound
	}
	save.Data = append([]byte(nil), save.Data...)
	return save, nil
}
