package gamesaverepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/petorang/superpet-api/internal/adapters/postgres"
	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
)

// Repo is a Postgres implementation of gamesaverepo.Repository. Each write is
// one upsert statement touching only its own column, so concurrent rotations
// and saves for a member cannot clobber each other's field.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) RotateSession(ctx context.Context, member domain.MemberID, sessionID string) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO game_saves (member_id, game_session_id)
		VALUES ($1, $2)
		ON CONFLICT (member_id) DO UPDATE SET
			game_session_id = EXCLUDED.game_session_id
	`, int64(member), sessionID)
	return postgres.WrapUnavailable(err)
}

func (r *Repo) PutData(ctx context.Context, member domain.MemberID, data []byte) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO game_saves (member_id, data)
		VALUES ($1, $2)
		ON CONFLICT (member_id) DO UPDATE SET
			data = EXCLUDED.data
	`, int64(member), data)
	return postgres.WrapUnavailable(err)
}

func (r *Repo) Get(ctx context.Context, member domain.MemberID) (gamesaverepo.Save, error) {
	if r.pool == nil {
		return gamesaverepo.Save{}, errors.New("nil postgres pool")
	}
	var (
		sessionID string
		data      []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT game_session_id, data
		FROM game_saves
		WHERE member_id = $1
	`, int64(member)).Scan(&sessionID, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gamesaverepo.Save{}, gamesaverepo.ErrNotFound
		}
		return gamesaverepo.Save{}, postgres.WrapUnavailable(err)
	}
	if len(data) == 0 {
		data = nil
	}
	return gamesaverepo.Save{MemberID: member, SessionID: sessionID, Data: data}, nil
}
