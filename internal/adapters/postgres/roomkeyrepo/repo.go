package roomkeyrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/petorang/superpet-api/internal/adapters/postgres"
	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/roomkeyrepo"
)

// Repo is a Postgres implementation of roomkeyrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, roomID domain.RoomID, code string, createdAt time.Time) (domain.RoomKeyID, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO room_keys (room_id, code, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, int64(roomID), code, createdAt.UTC()).Scan(&id)
	if err != nil {
		return 0, postgres.WrapUnavailable(err)
	}
	return domain.RoomKeyID(id), nil
}

func (r *Repo) GetWithOwner(ctx context.Context, id domain.RoomKeyID) (roomkeyrepo.RoomKey, error) {
	if r.pool == nil {
		return roomkeyrepo.RoomKey{}, errors.New("nil postgres pool")
	}
	// The owner comes from the parent room at query time; keys never carry a
	// stale copy of it.
	var (
		roomID    int64
		ownerID   int64
		code      string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT k.room_id, rm.owner_id, k.code, k.created_at
		FROM room_keys k
		JOIN rooms rm ON rm.id = k.room_id
		WHERE k.id = $1
	`, int64(id)).Scan(&roomID, &ownerID, &code, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roomkeyrepo.RoomKey{}, roomkeyrepo.ErrNotFound
		}
		return roomkeyrepo.RoomKey{}, postgres.WrapUnavailable(err)
	}
	return roomkeyrepo.RoomKey{
		ID:          id,
		RoomID:      domain.RoomID(roomID),
		RoomOwnerID: domain.MemberID(ownerID),
		Code:        code,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.RoomKeyID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM room_keys WHERE id = $1`, int64(id))
	if err != nil {
		return postgres.WrapUnavailable(err)
	}
	if ct.RowsAffected() == 0 {
		return roomkeyrepo.ErrNotFound
	}
	return nil
}
