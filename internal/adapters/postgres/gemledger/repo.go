package gemledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/petorang/superpet-api/internal/adapters/postgres"
	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/gemledger"
)

// Repo is a Postgres implementation of gemledger.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Append(ctx context.Context, rec gemledger.Record) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO gem_transactions (member_id, tx_type, amount, source, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		int64(rec.MemberID),
		string(rec.Type),
		rec.Amount,
		rec.Source,
		rec.Memo,
		rec.CreatedAt.UTC(),
	)
	return postgres.WrapUnavailable(err)
}

func (r *Repo) SumBalance(ctx context.Context, member domain.MemberID) (int64, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	// The balance is one aggregate computed by the database, so concurrent
	// appends never produce a partially summed result.
	var balance int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM gem_transactions
		WHERE member_id = $1
	`, int64(member)).Scan(&balance)
	if err != nil {
		return 0, postgres.WrapUnavailable(err)
	}
	return balance, nil
}
