package roomrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/petorang/superpet-api/internal/adapters/postgres"
	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

// Repo is a Postgres implementation of roomrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, room roomrepo.Room) (domain.RoomID, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO rooms (owner_id, name)
		VALUES ($1, $2)
		RETURNING id
	`, int64(room.OwnerID), room.Name).Scan(&id)
	if err != nil {
		return 0, postgres.WrapUnavailable(err)
	}
	return domain.RoomID(id), nil
}

func (r *Repo) Get(ctx context.Context, id domain.RoomID) (roomrepo.Room, error) {
	if r.pool == nil {
		return roomrepo.Room{}, errors.New("nil postgres pool")
	}
	var (
		ownerID int64
		name    string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT owner_id, name
		FROM rooms
		WHERE id = $1
	`, int64(id)).Scan(&ownerID, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roomrepo.Room{}, roomrepo.ErrNotFound
		}
		return roomrepo.Room{}, postgres.WrapUnavailable(err)
	}
	return roomrepo.Room{ID: id, OwnerID: domain.MemberID(ownerID), Name: name}, nil
}
